package core

import "encoding/json"

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandRequestSessionID asks for a fresh session id (producer).
	CommandRequestSessionID CommandKind = iota
	// CommandPublishSetup stores and broadcasts a setup payload.
	CommandPublishSetup
	// CommandPublishTelemetry stores and broadcasts a telemetry payload.
	CommandPublishTelemetry
	// CommandJoinSession subscribes the client to a session's room (viewer).
	CommandJoinSession
)

// Command represents an action requested by a client. Setup and
// Telemetry carry the producer's JSON verbatim.
type Command struct {
	Kind      CommandKind
	SessionID string
	Timestamp string
	Setup     json.RawMessage
	Telemetry json.RawMessage
}
