package actor

import (
	"errors"
	"testing"

	"github.com/dearbird/muddery/internal/combat"
	"github.com/dearbird/muddery/internal/game"
)

func warriorTemplate() *game.CharacterTemplate {
	return &game.CharacterTemplate{
		Name:      "Warrior",
		MaxHealth: 30,
		Icon:      "warrior",
		Skills: []game.Skill{
			{Key: "slash", Name: "Slash", Effect: game.SkillEffect{Damage: 4}},
		},
	}
}

func TestSpawn_CopiesTemplate(t *testing.T) {
	ch := Spawn(warriorTemplate(), true)
	if ch.ID() == "" {
		t.Fatalf("spawned character must get an id")
	}
	if ch.Name() != "Warrior" || ch.Icon() != "warrior" {
		t.Fatalf("unexpected identity: %s/%s", ch.Name(), ch.Icon())
	}
	if ch.Health() != 30 || ch.MaxHealth() != 30 || !ch.Alive() {
		t.Fatalf("spawn must start at full health")
	}
	if !ch.HasSink() {
		t.Fatalf("player spawn must carry a sink")
	}

	npc := Spawn(warriorTemplate(), false)
	if npc.HasSink() || npc.Sink() != nil {
		t.Fatalf("NPC spawn must not carry a sink")
	}
	if npc.ID() == ch.ID() {
		t.Fatalf("spawns must get distinct ids")
	}
}

func TestCastSkill_Preconditions(t *testing.T) {
	ch := Spawn(warriorTemplate(), false)
	if err := ch.CastSkill("slash", nil); !errors.Is(err, ErrNotInCombat) {
		t.Fatalf("expected ErrNotInCombat, got %v", err)
	}

	ch.SetCombat(combat.New(combat.Hooks{}))
	if err := ch.CastSkill("fireball", nil); err == nil {
		t.Fatalf("expected unknown-skill error")
	}
}

func TestDamageAndHealClamp(t *testing.T) {
	ch := Spawn(warriorTemplate(), false)
	if hp := ch.ApplyDamage(40); hp != 0 || ch.Alive() {
		t.Fatalf("damage must floor at zero, got %d", hp)
	}
	if hp := ch.Heal(100); hp != 30 {
		t.Fatalf("heal must cap at max health, got %d", hp)
	}
}

func TestSink_KeepsDeliveryOrder(t *testing.T) {
	sink := NewBufferSink()
	sink.Push(combat.Event{"joined_combat": true})
	sink.Push(combat.Event{"left_combat": true})

	events := sink.Drain()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if _, ok := events[0]["joined_combat"]; !ok {
		t.Fatalf("events must drain in delivery order")
	}
	if sink.Len() != 0 {
		t.Fatalf("drain must empty the sink")
	}
}

func TestSink_DropsOldestWhenFull(t *testing.T) {
	sink := NewBufferSink()
	for i := 0; i < sinkCapacity+1; i++ {
		sink.Push(combat.Event{"status": i})
	}
	events := sink.Drain()
	if len(events) != sinkCapacity {
		t.Fatalf("expected %d events, got %d", sinkCapacity, len(events))
	}
	if events[0]["status"] != 1 {
		t.Fatalf("oldest event must be dropped first, got %v", events[0])
	}
}
