// Package registry owns the set of live combat encounters. It is the only
// component holding long-lived references to sessions: it spawns the
// combatants, admits them, maps actor ids back to their encounter and
// force-terminates everything on process shutdown.
package registry

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dearbird/muddery/internal/actor"
	"github.com/dearbird/muddery/internal/combat"
	"github.com/dearbird/muddery/internal/constants"
	"github.com/dearbird/muddery/internal/logging"
	"github.com/dearbird/muddery/internal/storage"
)

var ErrEncounterNotFound = errors.New("encounter not found")

// MemberSpec names one combatant to spawn into a team. Player members get
// a notification sink; NPC members do not.
type MemberSpec struct {
	Template string `json:"template"`
	Player   bool   `json:"player"`
}

// Encounter pairs a live session with the spawned characters backing it.
type Encounter struct {
	ID        string
	Session   *combat.Session
	CreatedAt time.Time

	actors  map[string]*actor.Character
	endedAt time.Time
}

// Actor returns the spawned character with the given id, or nil.
func (e *Encounter) Actor(id string) *actor.Character {
	return e.actors[id]
}

// Registry creates and tracks encounters. An actor id appears in at most
// one live encounter at a time; the registry enforces that, not the
// session.
type Registry struct {
	repo           storage.Repository
	defaultTimeout int

	mu         sync.Mutex
	encounters map[string]*Encounter
	// ended retains finished encounters until swept so clients can drain
	// their final notifications (win/lose/draw, left_combat).
	ended   map[string]*Encounter
	byActor map[string]string
}

// New creates a registry spawning characters from repo. defaultTimeout (in
// seconds) applies to encounters created without an explicit limit.
func New(repo storage.Repository, defaultTimeout int) *Registry {
	return &Registry{
		repo:           repo,
		defaultTimeout: defaultTimeout,
		encounters:     make(map[string]*Encounter),
		ended:          make(map[string]*Encounter),
		byActor:        make(map[string]string),
	}
}

// CreateEncounter spawns every member of every team from its stored
// template, builds a session and admits them. timeoutSeconds < 0 selects
// the registry default; 0 means unlimited.
func (r *Registry) CreateEncounter(teams map[string][]MemberSpec, desc string, timeoutSeconds int) (*Encounter, error) {
	if timeoutSeconds < 0 {
		timeoutSeconds = r.defaultTimeout
	}

	enc := &Encounter{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		actors:    make(map[string]*actor.Character),
	}

	admitted := make(map[string][]combat.Actor, len(teams))
	for team, members := range teams {
		for _, m := range members {
			tpl, err := r.repo.GetCharacterTemplateByName(m.Template)
			if err != nil {
				return nil, fmt.Errorf(constants.ErrUnknownCharacterFmt, m.Template)
			}
			ch := actor.Spawn(tpl, m.Player)
			enc.actors[ch.ID()] = ch
			admitted[team] = append(admitted[team], ch)
		}
	}

	enc.Session = combat.New(combat.Hooks{
		End: func(*combat.Session) { r.drop(enc.ID) },
	})
	if err := enc.Session.Admit(admitted, desc, timeoutSeconds); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.encounters[enc.ID] = enc
	for id := range enc.actors {
		r.byActor[id] = enc.ID
	}
	r.mu.Unlock()

	logging.Info("encounter created", logging.Fields{
		constants.LogFieldEncounterID: enc.ID,
		"teams":                       len(teams),
		"actors":                      len(enc.actors),
		"timeout":                     timeoutSeconds,
	})
	return enc, nil
}

// Get returns an encounter by id, live or recently ended.
func (r *Registry) Get(id string) (*Encounter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if enc, ok := r.encounters[id]; ok {
		return enc, nil
	}
	if enc, ok := r.ended[id]; ok {
		return enc, nil
	}
	return nil, ErrEncounterNotFound
}

// FindByActor returns the encounter an actor is currently fighting in. The
// actor-to-session relation lives here, not on the actor, so a character
// never owns its session's lifetime.
func (r *Registry) FindByActor(actorID string) (*Encounter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byActor[actorID]
	if !ok {
		return nil, ErrEncounterNotFound
	}
	enc, ok := r.encounters[id]
	if !ok {
		return nil, ErrEncounterNotFound
	}
	return enc, nil
}

// Len returns the number of live encounters.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.encounters)
}

// drop retires a finished encounter: the actor index entries go away so the
// ids can fight again, and the encounter moves to the ended set until swept.
// Invoked by the session's End hook on every teardown path; dropping an
// already-retired id is a no-op.
func (r *Registry) drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	enc, ok := r.encounters[id]
	if !ok {
		return
	}
	for actorID := range enc.actors {
		delete(r.byActor, actorID)
	}
	delete(r.encounters, id)
	enc.endedAt = time.Now()
	r.ended[id] = enc
	logging.Info("encounter ended", logging.Fields{constants.LogFieldEncounterID: id})
}

// Sweep forgets ended encounters older than maxAge and returns how many it
// removed. The server runs this periodically.
func (r *Registry) Sweep(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, enc := range r.ended {
		if enc.endedAt.Before(cutoff) {
			delete(r.ended, id)
			removed++
		}
	}
	return removed
}

// Shutdown force-terminates every live encounter. Sessions release their
// actors without declaring an outcome; safe to call more than once.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	live := make([]*Encounter, 0, len(r.encounters))
	for _, enc := range r.encounters {
		live = append(live, enc)
	}
	r.mu.Unlock()

	for _, enc := range live {
		enc.Session.Shutdown()
	}
	if len(live) > 0 {
		logging.Info("registry shutdown terminated encounters", logging.Fields{"count": len(live)})
	}
}
