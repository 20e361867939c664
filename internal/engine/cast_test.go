package engine

import (
	"errors"
	"testing"

	"github.com/dearbird/muddery/internal/combat"
	"github.com/dearbird/muddery/internal/game"
)

type fakeCombatant struct {
	id    string
	name  string
	team  string
	hp    int
	maxHP int
}

func (f *fakeCombatant) ID() string { return f.id }
func (f *fakeCombatant) Name() string { return f.name }
func (f *fakeCombatant) Icon() string { return "" }
func (f *fakeCombatant) Team() string { return f.team }
func (f *fakeCombatant) SetTeam(team string) { f.team = team }
func (f *fakeCombatant) Alive() bool { return f.hp > 0 }
func (f *fakeCombatant) MaxHealth() int { return f.maxHP }
func (f *fakeCombatant) Health() int { return f.hp }
func (f *fakeCombatant) HasSink() bool { return false }
func (f *fakeCombatant) Send(combat.Event) {}
func (f *fakeCombatant) EnableCombatCommands() {}
func (f *fakeCombatant) DisableCombatCommands() {}
func (f *fakeCombatant) SetCombat(*combat.Session) {}
func (f *fakeCombatant) RefreshStatus() {}

func (f *fakeCombatant) CastSkill(string, combat.Actor) error { return nil }

func (f *fakeCombatant) ApplyDamage(n int) int {
	f.hp -= n
	if f.hp < 0 {
		f.hp = 0
	}
	return f.hp
}

func (f *fakeCombatant) Heal(n int) int {
	f.hp += n
	if f.hp > f.maxHP {
		f.hp = f.maxHP
	}
	return f.hp
}

type fakeRuling struct {
	escaped  []combat.Actor
	finishes int
	results  []interface{}
}

func (r *fakeRuling) Escape(caller combat.Actor) { r.escaped = append(r.escaped, caller) }
func (r *fakeRuling) Finish() { r.finishes++ }
func (r *fakeRuling) SendSkillResult(res interface{}) { r.results = append(r.results, res) }

func damageSkill(key string, dmg int) game.Skill {
	return game.Skill{Key: key, Name: key, Effect: game.SkillEffect{Damage: dmg}}
}

func TestCast_DamageSkill(t *testing.T) {
	caster := &fakeCombatant{id: "c", name: "Caster", hp: 10, maxHP: 10}
	target := &fakeCombatant{id: "t", name: "Target", hp: 8, maxHP: 8}
	r := &fakeRuling{}

	if err := Cast(r, damageSkill("slash", 3), caster, target); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.hp != 5 {
		t.Fatalf("expected target at 5 hp, got %d", target.hp)
	}
	if len(r.results) != 1 {
		t.Fatalf("expected one skill_result broadcast, got %d", len(r.results))
	}
	res := r.results[0].(Result)
	if res.Skill != "slash" || res.Damage != 3 || res.TargetHP != 5 || res.Defeated {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestCast_LethalDamageMarksDefeated(t *testing.T) {
	caster := &fakeCombatant{id: "c", name: "Caster", hp: 10, maxHP: 10}
	target := &fakeCombatant{id: "t", name: "Target", hp: 2, maxHP: 8}
	r := &fakeRuling{}

	if err := Cast(r, damageSkill("smite", 5), caster, target); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.hp != 0 || target.Alive() {
		t.Fatalf("expected target dead at 0 hp, got %d", target.hp)
	}
	res := r.results[0].(Result)
	if !res.Defeated || res.TargetHP != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	// the engine never finishes the combat itself; the session re-checks
	if r.finishes != 0 {
		t.Fatalf("lethal damage must not call Finish, got %d", r.finishes)
	}
}

func TestCast_HealSelfIsCapped(t *testing.T) {
	caster := &fakeCombatant{id: "c", name: "Caster", hp: 6, maxHP: 10}
	r := &fakeRuling{}
	sk := game.Skill{Key: "mend", Effect: game.SkillEffect{Heal: 9, TargetSelf: true}}

	if err := Cast(r, sk, caster, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if caster.hp != 10 {
		t.Fatalf("heal must cap at max health, got %d", caster.hp)
	}
	res := r.results[0].(Result)
	if res.TargetID != "c" || res.Heal != 9 || res.TargetHP != 10 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestCast_EscapeSkill(t *testing.T) {
	caster := &fakeCombatant{id: "c", name: "Coward", hp: 4, maxHP: 10}
	r := &fakeRuling{}
	sk := game.Skill{Key: "flee", Effect: game.SkillEffect{Escape: true}}

	if err := Cast(r, sk, caster, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.escaped) != 1 || r.escaped[0].ID() != "c" {
		t.Fatalf("expected caster to escape, got %v", r.escaped)
	}
	res := r.results[0].(Result)
	if !res.Escaped {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestCast_DeadCasterRejected(t *testing.T) {
	caster := &fakeCombatant{id: "c", name: "Ghost", hp: 0, maxHP: 10}
	target := &fakeCombatant{id: "t", name: "Target", hp: 8, maxHP: 8}
	r := &fakeRuling{}

	if err := Cast(r, damageSkill("slash", 3), caster, target); !errors.Is(err, ErrCasterDefeated) {
		t.Fatalf("expected ErrCasterDefeated, got %v", err)
	}
	if len(r.results) != 0 || target.hp != 8 {
		t.Fatalf("a rejected cast must have no effects")
	}
}
