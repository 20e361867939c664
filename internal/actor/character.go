// Package actor provides the live combatant spawned from a stored
// character template. It implements both the combat actor contract and the
// engine's combatant contract.
package actor

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dearbird/muddery/internal/combat"
	"github.com/dearbird/muddery/internal/engine"
	"github.com/dearbird/muddery/internal/game"
)

var ErrNotInCombat = errors.New("character is not in combat")

// Character is one spawned combatant. Player-controlled characters carry a
// BufferSink; NPCs are spawned without one and receive no notifications.
//
// The combat session serializes every mutation of team, back-reference and
// command-set state; Character itself does not lock those fields.
type Character struct {
	id        string
	name      string
	icon      string
	maxHealth int
	health    int
	skills    map[string]game.Skill

	team            string
	sink            *BufferSink
	session         *combat.Session
	commandsEnabled bool
}

// Spawn builds a live character from a template. withSink controls whether
// the character gets a notification sink (players yes, NPCs no).
func Spawn(tpl *game.CharacterTemplate, withSink bool) *Character {
	c := &Character{
		id:        uuid.NewString(),
		name:      tpl.Name,
		icon:      tpl.Icon,
		maxHealth: tpl.MaxHealth,
		health:    tpl.MaxHealth,
		skills:    make(map[string]game.Skill, len(tpl.Skills)),
	}
	for _, sk := range tpl.Skills {
		c.skills[sk.Key] = sk
	}
	if withSink {
		c.sink = NewBufferSink()
	}
	return c
}

func (c *Character) ID() string   { return c.id }
func (c *Character) Name() string { return c.name }
func (c *Character) Icon() string { return c.icon }

func (c *Character) Team() string        { return c.team }
func (c *Character) SetTeam(team string) { c.team = team }

func (c *Character) Alive() bool    { return c.health > 0 }
func (c *Character) MaxHealth() int { return c.maxHealth }
func (c *Character) Health() int    { return c.health }

func (c *Character) HasSink() bool { return c.sink != nil }

// Sink exposes the character's event buffer for the API to drain; nil for
// NPCs.
func (c *Character) Sink() *BufferSink { return c.sink }

func (c *Character) Send(ev combat.Event) {
	if c.sink != nil {
		c.sink.Push(ev)
	}
}

func (c *Character) EnableCombatCommands()  { c.commandsEnabled = true }
func (c *Character) DisableCombatCommands() { c.commandsEnabled = false }

// CombatCommandsEnabled reports whether the character currently holds the
// in-combat command set.
func (c *Character) CombatCommandsEnabled() bool { return c.commandsEnabled }

func (c *Character) SetCombat(s *combat.Session) { c.session = s }

// Combat returns the session this character is fighting in, or nil.
func (c *Character) Combat() *combat.Session { return c.session }

// CastSkill resolves one of the character's own skills through the engine.
// Only callable while in combat; the session holds its lock when invoking
// this, and the engine talks back through the session's Ruling.
func (c *Character) CastSkill(skillKey string, target combat.Actor) error {
	if c.session == nil {
		return ErrNotInCombat
	}
	sk, ok := c.skills[skillKey]
	if !ok {
		return fmt.Errorf("%s does not know skill %q", c.name, skillKey)
	}
	return engine.Cast(c.session.Ruling(), sk, c, target)
}

// ApplyDamage subtracts damage, flooring health at zero.
func (c *Character) ApplyDamage(n int) int {
	c.health -= n
	if c.health < 0 {
		c.health = 0
	}
	return c.health
}

// Heal restores health up to the character's maximum.
func (c *Character) Heal(n int) int {
	c.health += n
	if c.health > c.maxHealth {
		c.health = c.maxHealth
	}
	return c.health
}

// RefreshStatus pushes the character's own status to its sink; called by
// the session when the character leaves combat.
func (c *Character) RefreshStatus() {
	if c.sink == nil {
		return
	}
	c.sink.Push(combat.Event{"status": map[string]interface{}{
		"name":   c.name,
		"hp":     c.health,
		"max_hp": c.maxHealth,
	}})
}
