package storage

import (
	"github.com/dearbird/muddery/internal/game"
)

// Repository is the read surface over stored combat templates. Encounter
// state itself is transient and never persisted; only the blueprints live
// in the database.
type Repository interface {
	ListCharacterTemplates() ([]game.CharacterTemplate, error)
	// GetCharacterTemplateByName returns a template by name
	// (case-insensitive), with its skills preloaded.
	GetCharacterTemplateByName(name string) (*game.CharacterTemplate, error)

	ListSkills() ([]game.Skill, error)
	GetSkillByKey(key string) (*game.Skill, error)
}
