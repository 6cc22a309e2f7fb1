package core

import "encoding/json"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventSessionAssigned answers a session id request, sent to the
	// requesting producer only.
	EventSessionAssigned EventKind = iota
	// EventSetupUpdate carries a setup payload, either broadcast to a
	// room or unicast as a late-join snapshot.
	EventSetupUpdate
	// EventTelemetryUpdate carries a telemetry payload, broadcast or
	// snapshot like EventSetupUpdate.
	EventTelemetryUpdate
)

// Event is sent to clients to describe what happened. The same Event
// value is delivered to every member of a room, so payload bytes are
// identical across recipients.
type Event struct {
	Kind      EventKind
	SessionID string
	Timestamp string
	Setup     json.RawMessage
	Telemetry json.RawMessage
}
