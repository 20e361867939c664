package api

import (
	"github.com/dearbird/muddery/internal/registry"
	"github.com/dearbird/muddery/internal/storage"
)

// EncounterHandler groups all combat-related HTTP handlers.
type EncounterHandler struct {
	reg  *registry.Registry
	repo storage.Repository
}

// NewEncounterHandler creates a handler backed by the given registry and
// template repository.
func NewEncounterHandler(reg *registry.Registry, repo storage.Repository) *EncounterHandler {
	return &EncounterHandler{reg: reg, repo: repo}
}
