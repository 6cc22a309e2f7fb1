package core

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Registry owns session identity: it generates ids, validates their
// syntax, and passes reads and writes through to the Store with no
// additional policy.
type Registry struct {
	store *Store
}

// NewRegistry wraps a store with id generation and validation.
func NewRegistry(store *Store) *Registry {
	return &Registry{store: store}
}

// CreateSession generates a random v4 id, inserts it into the store and
// returns it. Generation retries on collision; with 122 bits of
// randomness a retry effectively never happens.
func (r *Registry) CreateSession() string {
	for {
		id := uuid.NewString()
		if err := r.store.Create(id); err == nil {
			return id
		}
	}
}

// ValidSessionID reports whether s is in canonical 36-character
// lowercase hyphenated form. Syntax is checked for early rejection of
// garbage input only; a valid id may belong to a session that does not
// exist yet.
func (r *Registry) ValidSessionID(s string) bool {
	if len(s) != 36 {
		return false
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	// uuid.Parse accepts uppercase and braced forms; require canonical.
	return parsed.String() == s
}

// Session returns the current state for id.
func (r *Registry) Session(id string) (Session, bool) {
	return r.store.Get(id)
}

// UpdateSetup replaces the setup payload for id.
func (r *Registry) UpdateSetup(id string, setup json.RawMessage, timestamp string) error {
	return r.store.ReplaceSetup(id, setup, timestamp)
}

// UpdateTelemetry replaces the telemetry payload for id.
func (r *Registry) UpdateTelemetry(id string, telemetry json.RawMessage) error {
	return r.store.ReplaceTelemetry(id, telemetry)
}

// DeleteSession removes id from the store. Unknown ids are a no-op.
func (r *Registry) DeleteSession(id string) {
	r.store.Delete(id)
}

// SessionIDs returns a snapshot of all known session ids.
func (r *Registry) SessionIDs() []string {
	return r.store.ListIDs()
}
