// Package navigation holds the per-session navigation service: the recorded
// path state, the history rewriter that converges it to canonical form, and
// the section navigator.
package navigation

import (
	"sync"
)

// NavState is the navigation state recorded for one session. It mirrors what
// a browser session would keep between requests: the current path, the active
// section, the active course id, the cached greeting name, and the transient
// search-navigation flag.
type NavState struct {
	Path             string
	Section          string
	CourseID         string
	DisplayFirstName string
	SearchNavigation bool // suppresses the next scroll-to-top, then clears
}

// StateStore keeps NavState per session token. All mutation goes through
// Update so each session's state has a single writer at a time.
type StateStore struct {
	mu     sync.Mutex
	states map[string]NavState
}

// NewStateStore creates an empty StateStore.
func NewStateStore() *StateStore {
	return &StateStore{states: make(map[string]NavState)}
}

// Get returns the state for a session token. A session with no recorded state
// gets the zero value.
func (s *StateStore) Get(token string) NavState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[token]
}

// Update applies fn to the session's state under the lock and stores the
// result.
func (s *StateStore) Update(token string, fn func(*NavState)) NavState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.states[token]
	fn(&st)
	s.states[token] = st
	return st
}

// Drop removes the state for a session token (sign-out).
func (s *StateStore) Drop(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, token)
}
