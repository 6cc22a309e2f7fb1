package core

import (
	"encoding/json"
	"sync"

	"github.com/jonboulle/clockwork"
)

// Store is the authoritative id -> session state map. It knows nothing
// about rooms or connections; the Registry layers id policy on top and
// the Hub decides who gets told about changes.
//
// Reads take the shared lock so viewers and health checks can inspect
// state concurrently; all writes for a given id are serialized by the
// exclusive lock.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	clock    clockwork.Clock
}

// NewStore builds an empty store. A nil clock defaults to the wall clock.
func NewStore(clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		sessions: make(map[string]*Session),
		clock:    clock,
	}
}

// Create inserts a fresh session under id. It refuses to overwrite an
// existing session.
func (s *Store) Create(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; exists {
		return ErrSessionExists
	}
	s.sessions[id] = &Session{
		ID:        id,
		CreatedAt: s.clock.Now().UTC(),
	}
	return nil
}

// Get returns a copy of the session state. Absence is an ordinary
// result, not an error.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *sess, true
}

// ReplaceSetup overwrites the whole setup payload and records the
// producer-supplied timestamp. There is no field-level merge.
func (s *Store) ReplaceSetup(id string, setup json.RawMessage, timestamp string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrUnknownSession
	}
	sess.Setup = setup
	sess.SetupTimestamp = timestamp
	return nil
}

// ReplaceTelemetry overwrites the whole telemetry payload and stamps
// LastUpdate with the arrival time.
func (s *Store) ReplaceTelemetry(id string, telemetry json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrUnknownSession
	}
	sess.Telemetry = telemetry
	sess.LastUpdate = s.clock.Now().UTC()
	return nil
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// ListIDs returns a snapshot of the currently known session ids.
func (s *Store) ListIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of known sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
