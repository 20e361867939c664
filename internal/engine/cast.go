// Package engine resolves skill casts against combatants. It owns the
// game-rule outcome of an action (damage, healing, escapes); termination
// bookkeeping stays with the combat session that invoked it.
package engine

import (
	"errors"

	"github.com/dearbird/muddery/internal/combat"
	"github.com/dearbird/muddery/internal/game"
)

var (
	ErrCasterDefeated = errors.New("caster is no longer able to act")
	ErrInvalidTarget  = errors.New("skill target cannot take effects")
)

// Combatant extends the combat actor contract with the health mutations
// skill resolution needs. Every spawned character implements it.
type Combatant interface {
	combat.Actor

	// ApplyDamage subtracts n health (floored at zero) and returns the
	// remaining health.
	ApplyDamage(n int) int
	// Heal restores n health (capped at max) and returns the new health.
	Heal(n int) int
}

// Result is the skill_result payload broadcast to every remaining sinked
// actor after a cast resolves.
type Result struct {
	Skill      string `json:"skill"`
	CasterID   string `json:"caster_id"`
	CasterName string `json:"caster_name"`
	TargetID   string `json:"target_id,omitempty"`
	TargetName string `json:"target_name,omitempty"`
	Damage     int    `json:"damage,omitempty"`
	Heal       int    `json:"heal,omitempty"`
	TargetHP   int    `json:"target_hp"`
	Defeated   bool   `json:"defeated,omitempty"`
	Escaped    bool   `json:"escaped,omitempty"`
}

// Cast applies sk for caster. Escape skills remove the caster through the
// session's Ruling; everything else resolves against target, which defaults
// to the caster for self-targeted skills. The session re-checks its end
// condition after Cast returns, so a lethal cast ends the fight without
// Cast having to do anything.
func Cast(r combat.Ruling, sk game.Skill, caster Combatant, target combat.Actor) error {
	if !caster.Alive() {
		return ErrCasterDefeated
	}

	if sk.Effect.Escape {
		r.Escape(caster)
		r.SendSkillResult(Result{
			Skill:      sk.Key,
			CasterID:   caster.ID(),
			CasterName: caster.Name(),
			TargetHP:   caster.Health(),
			Escaped:    true,
		})
		return nil
	}

	tgt := target
	if sk.Effect.TargetSelf || tgt == nil {
		tgt = caster
	}
	victim, ok := tgt.(Combatant)
	if !ok {
		return ErrInvalidTarget
	}

	res := Result{
		Skill:      sk.Key,
		CasterID:   caster.ID(),
		CasterName: caster.Name(),
		TargetID:   victim.ID(),
		TargetName: victim.Name(),
	}
	if sk.Effect.Damage > 0 {
		res.Damage = sk.Effect.Damage
		res.TargetHP = victim.ApplyDamage(sk.Effect.Damage)
		res.Defeated = !victim.Alive()
	}
	if sk.Effect.Heal > 0 {
		res.Heal = sk.Effect.Heal
		res.TargetHP = victim.Heal(sk.Effect.Heal)
	}
	if sk.Effect.Damage == 0 && sk.Effect.Heal == 0 {
		res.TargetHP = victim.Health()
	}

	r.SendSkillResult(res)
	return nil
}
