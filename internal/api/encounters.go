package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dearbird/muddery/internal/constants"
	"github.com/dearbird/muddery/internal/registry"
)

// CreateEncounterRequest is the payload for starting a new encounter.
// Timeout is optional; nil selects the server default, 0 disables the
// limit.
type CreateEncounterRequest struct {
	Desc    string                           `json:"desc"`
	Timeout *int                             `json:"timeout"`
	Teams   map[string][]registry.MemberSpec `json:"teams"`
}

// CreateEncounter spawns the requested teams and starts a combat session.
func (h *EncounterHandler) CreateEncounter(c *gin.Context) {
	var req CreateEncounterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if len(req.Teams) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrTeamsRequired})
		return
	}
	timeout := -1
	if req.Timeout != nil {
		timeout = *req.Timeout
	}

	enc, err := h.reg.CreateEncounter(req.Teams, req.Desc, timeout)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"encounter_id": enc.ID,
		"appearance":   enc.Session.Appearance(),
	})
}

// GetEncounter returns the current appearance snapshot; clients use it to
// re-sync after reconnecting.
func (h *EncounterHandler) GetEncounter(c *gin.Context) {
	enc, err := h.reg.Get(c.Param("encounterID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrEncounterNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"encounter_id": enc.ID,
		"finished":     enc.Session.Finished(),
		"appearance":   enc.Session.Appearance(),
	})
}

// EndEncounter force-terminates an encounter. This is an operational stop:
// actors are released without a win, loss or draw being declared.
func (h *EncounterHandler) EndEncounter(c *gin.Context) {
	enc, err := h.reg.Get(c.Param("encounterID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrEncounterNotFound})
		return
	}
	enc.Session.Shutdown()
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Encounter terminated"})
}

// DrainEvents returns and clears the buffered notifications for one actor.
// Events keep their delivery order; NPCs have no sink and cannot be
// polled.
func (h *EncounterHandler) DrainEvents(c *gin.Context) {
	enc, err := h.reg.Get(c.Param("encounterID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrEncounterNotFound})
		return
	}
	ch := enc.Actor(c.Query("actor_id"))
	if ch == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrActorNotFound})
		return
	}
	sink := ch.Sink()
	if sink == nil {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrActorHasNoSink})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": sink.Drain()})
}
