package game

import (
	"gorm.io/gorm"
)

// SkillEffect describes what a skill does when cast. All fields are
// optional and applied when present; Escape makes the skill remove the
// caster from combat instead of touching health.
type SkillEffect struct {
	Damage     int  `json:"damage"`
	Heal       int  `json:"heal"`
	TargetSelf bool `json:"target_self"`
	Escape     bool `json:"escape"`
}

// Skill is one castable skill, seeded from the server config file and
// persisted so templates can reference it.
type Skill struct {
	gorm.Model
	Key         string      `json:"key" gorm:"uniqueIndex"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Effect      SkillEffect `json:"effect" gorm:"embedded;embeddedPrefix:effect_"`
}

// TableName keeps the persisted table name explicit.
func (Skill) TableName() string { return "skill_templates" }

// CharacterTemplate is the stored blueprint a live combatant is spawned
// from. Spawned characters copy its stats; the template itself never
// changes during a fight.
type CharacterTemplate struct {
	gorm.Model
	Name      string  `json:"name" gorm:"uniqueIndex"`
	MaxHealth int     `json:"max_hp"`
	Icon      string  `json:"icon"`
	Skills    []Skill `json:"skills" gorm:"many2many:character_template_skills;"`
}

// TableName overrides the default so the table reads as what it holds.
func (CharacterTemplate) TableName() string { return "character_templates" }
