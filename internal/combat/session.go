package combat

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dearbird/muddery/internal/logging"
)

var (
	ErrNoTeams         = errors.New("combat needs at least one non-empty team")
	ErrNegativeTimeout = errors.New("combat timeout must not be negative")
	ErrActorNotFound   = errors.New("actor not in combat")
)

// Hooks are optional extension points a Session owner may install.
type Hooks struct {
	// Start runs once after all actors are admitted, before the timer is
	// scheduled. Automated opening moves (NPC behaviour) hang off this.
	Start func(s *Session)
	// End runs exactly once when the session tears down, through any exit
	// path, so the owning registry can drop its references.
	End func(s *Session)
}

// Session runs one combat encounter. It owns the roster, the team
// assignments and the timeout timer, and it guarantees that every admitted
// actor is released exactly once no matter how the encounter ends.
//
// All entry points serialize on the session mutex: action submission,
// escape, removal, the timer callback, shutdown and snapshot queries. The
// finished flag is the single source of truth for termination; a timer
// firing after a normal finish observes it and does nothing.
type Session struct {
	mu sync.Mutex

	desc    string
	timeout int // seconds; 0 means unlimited

	roster   map[string]Actor
	finished bool
	timer    *time.Timer

	hooks Hooks
}

// New creates an empty session. Call Admit to populate it.
func New(hooks Hooks) *Session {
	return &Session{
		roster: make(map[string]Actor),
		hooks:  hooks,
	}
}

// Admit adds every actor of every team to the combat: records the team on
// the actor, installs the session back-reference, grants the combat command
// set and notifies sinked actors (join confirmation first, then the full
// snapshot). If timeoutSeconds > 0 the draw timer is scheduled once.
//
// Malformed input (no teams, duplicate actor ids) is a caller bug and is
// rejected before any actor is touched.
func (s *Session) Admit(teams map[string][]Actor, desc string, timeoutSeconds int) error {
	s.mu.Lock()
	err := s.admitLocked(teams, desc, timeoutSeconds)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	// The start hook runs outside the lock so automated opening moves can
	// re-enter the session like any other entry point.
	if s.hooks.Start != nil {
		s.hooks.Start(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timeout > 0 && !s.finished {
		s.timer = time.AfterFunc(time.Duration(s.timeout)*time.Second, s.onTimeout)
	}
	return nil
}

func (s *Session) admitLocked(teams map[string][]Actor, desc string, timeoutSeconds int) error {
	if timeoutSeconds < 0 {
		return ErrNegativeTimeout
	}
	total := 0
	seen := make(map[string]struct{})
	for _, members := range teams {
		for _, a := range members {
			if _, dup := seen[a.ID()]; dup {
				return fmt.Errorf("duplicate actor %s in team mapping", a.ID())
			}
			seen[a.ID()] = struct{}{}
			total++
		}
	}
	if total == 0 {
		return ErrNoTeams
	}

	s.desc = desc
	s.timeout = timeoutSeconds

	for team, members := range teams {
		for _, a := range members {
			a.SetTeam(team)
			s.roster[a.ID()] = a
		}
	}

	for _, a := range s.roster {
		a.SetCombat(s)
		a.EnableCombatCommands()
		if a.HasSink() {
			a.Send(eventJoined())
			a.Send(eventInfo(s.appearanceLocked()))
		}
	}
	return nil
}

// CanFinish reports whether the combat has reached its end condition: a
// non-empty roster with at most one team still alive. An empty roster is
// not a victory; empty sessions are torn down explicitly instead.
func (s *Session) CanFinish() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canFinishLocked()
}

func (s *Session) canFinishLocked() bool {
	if len(s.roster) == 0 {
		return false
	}
	teams := make(map[string]struct{})
	for _, a := range s.roster {
		if a.Alive() {
			teams[a.Team()] = struct{}{}
			if len(teams) > 1 {
				return false
			}
		}
	}
	return true
}

// SubmitAction applies one "cast skill" action from casterID. Actions that
// arrive after the combat finished are dropped silently: resolution of an
// earlier action in the same batch may have ended the fight already, and
// that race is expected, not an error.
//
// Skill resolution may kill actors and may call back into the session via
// the Ruling; after it returns the end condition is re-checked.
func (s *Session) SubmitAction(skillKey, casterID, targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return nil
	}
	caster, ok := s.roster[casterID]
	if !ok {
		return ErrActorNotFound
	}
	var target Actor
	if targetID != "" {
		if target, ok = s.roster[targetID]; !ok {
			return ErrActorNotFound
		}
	}

	if err := caster.CastSkill(skillKey, target); err != nil {
		return err
	}

	if s.canFinishLocked() {
		s.finishLocked()
	}
	return nil
}

// Escape removes the escaping actor from the combat right away: one
// "escaped" notification, then release and removal. The end condition is
// deliberately not re-checked here; the escape skill's own resolution
// finishes the combat when appropriate, or the next action or the timeout
// does. RemoveActor is the path that re-checks.
func (s *Session) Escape(actorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return nil
	}
	a, ok := s.roster[actorID]
	if !ok {
		return ErrActorNotFound
	}
	s.escapeLocked(a)
	return nil
}

func (s *Session) escapeLocked(a Actor) {
	if a.HasSink() {
		a.Send(eventFinish("escaped"))
	}
	if _, ok := s.roster[a.ID()]; ok {
		s.releaseLocked(a)
		delete(s.roster, a.ID())
	}
}

// RemoveActor handles non-escape departures such as disconnects: release,
// delete, then re-check the end condition.
func (s *Session) RemoveActor(actorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.roster[actorID]
	if !ok {
		return ErrActorNotFound
	}
	s.releaseLocked(a)
	delete(s.roster, actorID)

	if s.canFinishLocked() {
		s.finishLocked()
	}
	return nil
}

// Finish ends the combat, declaring the first team found among the
// still-alive actors the winner. Safe because the end condition guarantees
// at most one team remains alive when this is reached through the normal
// paths; calling it directly with several teams alive silently picks
// whichever team the roster yields first.
func (s *Session) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finishLocked()
}

func (s *Session) finishLocked() {
	if s.finished {
		return
	}
	s.finished = true
	s.cancelTimerLocked()

	if len(s.roster) > 0 {
		winner := ""
		for _, a := range s.roster {
			if a.Alive() {
				winner = a.Team()
				break
			}
		}
		for _, a := range s.roster {
			if !a.HasSink() {
				continue
			}
			if a.Team() == winner {
				a.Send(eventFinish("win"))
			} else {
				a.Send(eventFinish("lose"))
			}
		}
	}

	s.stopLocked()
}

// onTimeout fires when the wall-clock limit elapses before the combat
// finished: every sinked actor gets a draw, then the usual teardown runs. A
// timer that lost the race to a normal finish observes the flag and does
// nothing.
func (s *Session) onTimeout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return
	}
	s.finished = true
	logging.Info("combat timed out, declaring draw", logging.Fields{"actors": len(s.roster)})
	for _, a := range s.roster {
		if a.HasSink() {
			a.Send(eventFinish("draw"))
		}
	}
	s.stopLocked()
}

// Shutdown force-terminates the session: all remaining actors are released
// and the timer cancelled, with no win/lose/draw semantics. It is an
// operational event, not a game outcome, and is safe to call after a
// normal finish or timeout.
func (s *Session) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.finished = true
	s.stopLocked()
}

// stopLocked is the single teardown path: cancel the timer, release every
// remaining actor, then fire the End hook. The hook is cleared after use so
// converging exit paths fire it at most once.
func (s *Session) stopLocked() {
	s.cancelTimerLocked()
	for id, a := range s.roster {
		s.releaseLocked(a)
		delete(s.roster, id)
	}
	if s.hooks.End != nil {
		end := s.hooks.End
		s.hooks.End = nil
		end(s)
	}
}

// releaseLocked restores an actor to its out-of-combat state: command set
// revoked, back-reference cleared, and for sinked actors a left_combat
// notification followed by a status refresh.
func (s *Session) releaseLocked(a Actor) {
	a.DisableCombatCommands()
	a.SetCombat(nil)
	if a.HasSink() {
		a.Send(eventLeft())
		a.RefreshStatus()
	}
}

func (s *Session) cancelTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Ruling returns the in-action view of the session handed to skill
// resolution. Only valid while the session lock is held, i.e. from within
// Actor.CastSkill.
func (s *Session) Ruling() Ruling {
	return ruling{s: s}
}

type ruling struct {
	s *Session
}

func (r ruling) Escape(caller Actor) {
	r.s.escapeLocked(caller)
}

func (r ruling) Finish() {
	r.s.finishLocked()
}

func (r ruling) SendSkillResult(result interface{}) {
	for _, a := range r.s.roster {
		if a.HasSink() {
			a.Send(eventSkillResult(result))
		}
	}
}

// Appearance returns the current snapshot of the combat.
func (s *Session) Appearance() Appearance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appearanceLocked()
}

func (s *Session) appearanceLocked() Appearance {
	app := Appearance{
		Desc:       s.desc,
		Timeout:    s.timeout,
		Characters: make([]ActorInfo, 0, len(s.roster)),
	}
	for _, a := range s.roster {
		app.Characters = append(app.Characters, ActorInfo{
			ID:        a.ID(),
			Name:      a.Name(),
			Team:      a.Team(),
			MaxHealth: a.MaxHealth(),
			Health:    a.Health(),
			Icon:      a.Icon(),
		})
	}
	return app
}

// Finished reports whether the session has terminated through any path.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// Size returns the number of actors currently in the roster.
func (s *Session) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.roster)
}
