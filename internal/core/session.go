package core

import (
	"encoding/json"
	"time"
)

// Session is the latest known state for one producer, keyed by its id.
// Setup and Telemetry are opaque JSON documents owned by the producer;
// the relay never inspects their contents and replaces them wholesale
// on every publish.
type Session struct {
	ID             string
	CreatedAt      time.Time
	Setup          json.RawMessage
	SetupTimestamp string
	Telemetry      json.RawMessage
	LastUpdate     time.Time
}

// HasSetup reports whether a setup payload has been published.
func (s Session) HasSetup() bool {
	return len(s.Setup) > 0
}

// HasTelemetry reports whether a telemetry payload has been published.
func (s Session) HasTelemetry() bool {
	return len(s.Telemetry) > 0
}
