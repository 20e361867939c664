package combat

// Actor is the capability contract a combatant must satisfy to join a
// Session. Player characters and NPCs both implement it; the session never
// looks past this interface.
type Actor interface {
	// ID returns a stable identifier unique within the hosting process.
	ID() string
	Name() string
	// Icon returns the display icon key, or "" when the actor has none.
	Icon() string

	Team() string
	SetTeam(team string)

	Alive() bool
	MaxHealth() int
	Health() int

	// HasSink reports whether the actor has an active notification sink.
	// Send is a no-op for actors without one.
	HasSink() bool
	// Send delivers an event payload to the actor's sink, fire-and-forget.
	Send(ev Event)

	// EnableCombatCommands grants the in-combat command set; the session
	// calls it on admission and DisableCombatCommands on every release path.
	EnableCombatCommands()
	DisableCombatCommands()

	// SetCombat installs (or clears, with nil) the actor's back-reference
	// to the session it is fighting in.
	SetCombat(s *Session)

	// CastSkill resolves the named skill against target (which may be nil
	// for self-targeted skills). Resolution may kill actors and may call
	// back into the session through the Ruling it was handed.
	CastSkill(skillKey string, target Actor) error

	// RefreshStatus asks the actor to re-display its own status; called
	// after it leaves combat.
	RefreshStatus()
}

// Ruling is the slice of session behaviour available to skill resolution
// while an action is being applied. The session already holds its own lock
// when CastSkill runs, so Ruling methods skip locking; they must only be
// called from within Actor.CastSkill.
type Ruling interface {
	// Escape removes caller from the fight immediately. The session does
	// not re-check the end condition here; the caller's skill resolution
	// finishes the combat itself, or the next action or the timeout does.
	Escape(caller Actor)
	// Finish ends the combat now. Idempotent; safe to call even when the
	// pending action already satisfied the end condition.
	Finish()
	// SendSkillResult broadcasts a skill_result payload to every remaining
	// actor that has a sink.
	SendSkillResult(result interface{})
}
