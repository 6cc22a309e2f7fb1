package http

import (
	"encoding/json"
	"fmt"

	"github.com/onelap/pitwall-server/internal/core"
	"github.com/onelap/pitwall-server/internal/proto"
)

// inboundMappers is the wire-name half of the dispatch table: event
// name -> decoder producing a typed core command. Field presence is
// validated by the hub, not here; the mapper only decodes.
var inboundMappers = map[string]func(json.RawMessage) (*core.Command, error){
	proto.InboundTypeRequestSessionID: mapRequestSessionID,
	proto.InboundTypeSetupData:        mapSetupData,
	proto.InboundTypeTelemetryUpdate:  mapTelemetryUpdate,
	proto.InboundTypeJoinSession:      mapJoinSession,
}

var errUnknownType = fmt.Errorf("unknown inbound type")

func inboundToCommand(inbound proto.Inbound) (*core.Command, error) {
	mapper, ok := inboundMappers[inbound.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownType, inbound.Type)
	}
	return mapper(inbound.Data)
}

func mapRequestSessionID(json.RawMessage) (*core.Command, error) {
	// Payload is an empty object; nothing to decode.
	return &core.Command{Kind: core.CommandRequestSessionID}, nil
}

func mapSetupData(data json.RawMessage) (*core.Command, error) {
	var setup proto.SetupData
	if err := json.Unmarshal(data, &setup); err != nil {
		return nil, fmt.Errorf("decode setup_data: %w", err)
	}
	return &core.Command{
		Kind:      core.CommandPublishSetup,
		SessionID: setup.SessionID,
		Timestamp: setup.Timestamp,
		Setup:     setup.Setup,
	}, nil
}

func mapTelemetryUpdate(data json.RawMessage) (*core.Command, error) {
	var telemetry proto.TelemetryData
	if err := json.Unmarshal(data, &telemetry); err != nil {
		return nil, fmt.Errorf("decode telemetry_update: %w", err)
	}
	return &core.Command{
		Kind:      core.CommandPublishTelemetry,
		SessionID: telemetry.SessionID,
		Telemetry: telemetry.Telemetry,
	}, nil
}

func mapJoinSession(data json.RawMessage) (*core.Command, error) {
	var join proto.JoinSessionData
	if err := json.Unmarshal(data, &join); err != nil {
		return nil, fmt.Errorf("decode join_session: %w", err)
	}
	return &core.Command{
		Kind:      core.CommandJoinSession,
		SessionID: join.SessionID,
	}, nil
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventSessionAssigned:
		return proto.Outbound{
			Type: proto.OutboundTypeSessionAssigned,
			Data: proto.SessionAssignedData{SessionID: event.SessionID},
		}
	case core.EventSetupUpdate:
		return proto.Outbound{
			Type: proto.OutboundTypeSetupUpdate,
			Data: proto.SetupUpdateEvent{
				SessionID: event.SessionID,
				Timestamp: event.Timestamp,
				Setup:     event.Setup,
			},
		}
	case core.EventTelemetryUpdate:
		return proto.Outbound{
			Type: proto.OutboundTypeTelemetryUpdate,
			Data: proto.TelemetryUpdateEvent{
				SessionID: event.SessionID,
				Telemetry: event.Telemetry,
			},
		}
	default:
		return proto.Outbound{Type: "event"}
	}
}
