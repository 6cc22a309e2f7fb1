package proto

import "encoding/json"

// Inbound is the envelope for messages coming from a client. Type is
// the event name; Data stays raw until the mapper decodes it.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Outbound is the envelope for messages sent to a client.
type Outbound struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

const (
	// Producer -> core
	InboundTypeRequestSessionID = "request_session_id"
	InboundTypeSetupData        = "setup_data"
	InboundTypeTelemetryUpdate  = "telemetry_update"

	// Viewer -> core
	InboundTypeJoinSession = "join_session"

	// Core -> producer
	OutboundTypeSessionAssigned = "session_id_assigned"

	// Core -> viewers (room broadcast or late-join unicast)
	OutboundTypeSetupUpdate     = "setup_update"
	OutboundTypeTelemetryUpdate = "telemetry_update"
)

// SetupData is a producer's setup publish. Setup passes through as raw
// JSON; the relay does not impose a schema on its contents.
type SetupData struct {
	SessionID string          `json:"session_id"`
	Timestamp string          `json:"timestamp"`
	Setup     json.RawMessage `json:"setup"`
}

// TelemetryData is a producer's telemetry publish.
type TelemetryData struct {
	SessionID string          `json:"session_id"`
	Telemetry json.RawMessage `json:"telemetry"`
}

// JoinSessionData subscribes a viewer to a session's room.
type JoinSessionData struct {
	SessionID string `json:"session_id"`
}

// SessionAssignedData answers a request_session_id.
type SessionAssignedData struct {
	SessionID string `json:"session_id"`
}

// SetupUpdateEvent is the broadcast/snapshot form of a setup publish.
type SetupUpdateEvent struct {
	SessionID string          `json:"session_id"`
	Timestamp string          `json:"timestamp"`
	Setup     json.RawMessage `json:"setup"`
}

// TelemetryUpdateEvent is the broadcast/snapshot form of a telemetry publish.
type TelemetryUpdateEvent struct {
	SessionID string          `json:"session_id"`
	Telemetry json.RawMessage `json:"telemetry"`
}
