package pong

import (
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

// Registry owns every live MatchState plus the permanent record of ended
// match IDs. Ended IDs can never become active again for the lifetime of
// the process; a late join to one is refused upstream.
type Registry struct {
	mu     sync.RWMutex
	states map[string]*MatchState
	ended  map[string]bool
	seeds  *rand.Rand
}

func NewRegistry() *Registry {
	return &Registry{
		states: make(map[string]*MatchState),
		ended:  make(map[string]bool),
		seeds:  rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

// EnsureCreated creates the match with fresh initial state unless it
// already exists or has ended. Safe to call on every join.
func (r *Registry) EnsureCreated(matchID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ended[matchID] {
		return
	}
	if _, ok := r.states[matchID]; ok {
		return
	}
	r.states[matchID] = newMatchState(rand.New(rand.NewSource(r.seeds.Uint64())))
}

// Get returns the live state for matchID, or false when the match is
// nonexistent or ended.
func (r *Registry) Get(matchID string) (*MatchState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.states[matchID]
	return s, ok
}

func (r *Registry) IsEnded(matchID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ended[matchID]
}

// MarkEnded retires matchID permanently and drops its live state, so the
// simulation stops ticking it immediately. Idempotent.
func (r *Registry) MarkEnded(matchID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ended[matchID] = true
	delete(r.states, matchID)
}

// AllActiveIDs snapshots the IDs of every live match. Matches created
// after the snapshot are picked up on the next pass.
func (r *Registry) AllActiveIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.states))
	for id := range r.states {
		ids = append(ids, id)
	}
	return ids
}
