package core

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/onelap/pitwall-server/internal/metrics"
)

// Hub routes client commands to the Registry and Rooms. A single Run
// goroutine drains every channel, so all session mutations and all
// membership changes are serialized without per-session locks.
type Hub struct {
	registry *Registry
	rooms    *Rooms
	log      zerolog.Logger

	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand
	clients    map[*Client]struct{}
}

type clientCommand struct {
	client *Client
	cmd    *Command
}

// commandHandlers is the finite dispatch table: one typed handler per
// command kind. Unknown kinds are dropped, never fatal.
var commandHandlers = map[CommandKind]func(*Hub, *Client, *Command){
	CommandRequestSessionID: (*Hub).handleRequestSessionID,
	CommandPublishSetup:     (*Hub).handlePublishSetup,
	CommandPublishTelemetry: (*Hub).handlePublishTelemetry,
	CommandJoinSession:      (*Hub).handleJoinSession,
}

// NewHub creates a hub over the given registry and rooms. A nil logger
// disables hub logging.
func NewHub(registry *Registry, rooms *Rooms, logger *zerolog.Logger) *Hub {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &Hub{
		registry:   registry,
		rooms:      rooms,
		log:        l,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan clientCommand),
		clients:    make(map[*Client]struct{}),
	}
}

// RegisterClient hands a connected client to the hub. Must be called
// after Run has started.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient removes a client on disconnect. Room membership is
// cleaned up; session state is untouched so a producer may reconnect
// and resume with the same id.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Run processes registrations and commands until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			metrics.ConnectedClients.Inc()
			go h.pump(ctx, c)
		case c := <-h.unregister:
			h.drop(c)
		case cc := <-h.commands:
			h.dispatch(cc.client, cc.cmd)
		}
	}
}

// pump forwards one client's commands into the hub's single inbox. It
// exits when the hub stops or the client unregisters; without the done
// case every reconnect would pin a goroutine for the process lifetime.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case cmd, ok := <-c.Commands:
			if !ok {
				return
			}
			select {
			case h.commands <- clientCommand{client: c, cmd: cmd}:
			case <-ctx.Done():
				return
			case <-c.done:
				return
			}
		}
	}
}

func (h *Hub) drop(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	h.rooms.Leave(c)
	close(c.done)
	close(c.Events)
	metrics.ConnectedClients.Dec()
	h.log.Debug().Str("client_id", c.ID).Msg("client unregistered")
}

func (h *Hub) dispatch(c *Client, cmd *Command) {
	// A command can still be in flight when its client unregisters;
	// its Events channel is closed by then, so the command is void.
	if _, ok := h.clients[c]; !ok {
		return
	}
	handler, ok := commandHandlers[cmd.Kind]
	if !ok {
		h.dropCommand(c, "unknown", DropReasonUnknownType)
		return
	}
	handler(h, c, cmd)
}

func (h *Hub) handleRequestSessionID(c *Client, _ *Command) {
	// Each request creates an independent session; repeated requests on
	// one connection are not deduplicated.
	id := h.registry.CreateSession()
	metrics.SessionsCreated.Inc()
	metrics.EventsDispatched.WithLabelValues("request_session_id").Inc()
	h.log.Info().Str("client_id", c.ID).Str("session_id", id).Msg("session created")
	h.rooms.Unicast(c, &Event{Kind: EventSessionAssigned, SessionID: id})
}

func (h *Hub) handlePublishSetup(c *Client, cmd *Command) {
	if cmd.SessionID == "" || !hasPayload(cmd.Setup) {
		h.dropCommand(c, "setup_data", DropReasonMalformed)
		return
	}
	if err := h.registry.UpdateSetup(cmd.SessionID, cmd.Setup, cmd.Timestamp); err != nil {
		// No auto-create: a setup publish must follow a valid
		// session_id_assigned response.
		h.dropCommand(c, "setup_data", DropReasonUnknownSession)
		return
	}
	metrics.EventsDispatched.WithLabelValues("setup_data").Inc()
	delivered := h.rooms.Broadcast(cmd.SessionID, &Event{
		Kind:      EventSetupUpdate,
		SessionID: cmd.SessionID,
		Timestamp: cmd.Timestamp,
		Setup:     cmd.Setup,
	})
	metrics.BroadcastDeliveries.Add(float64(delivered))
}

func (h *Hub) handlePublishTelemetry(c *Client, cmd *Command) {
	if cmd.SessionID == "" || !hasPayload(cmd.Telemetry) {
		h.dropCommand(c, "telemetry_update", DropReasonMalformed)
		return
	}
	if err := h.registry.UpdateTelemetry(cmd.SessionID, cmd.Telemetry); err != nil {
		h.dropCommand(c, "telemetry_update", DropReasonUnknownSession)
		return
	}
	metrics.EventsDispatched.WithLabelValues("telemetry_update").Inc()
	delivered := h.rooms.Broadcast(cmd.SessionID, &Event{
		Kind:      EventTelemetryUpdate,
		SessionID: cmd.SessionID,
		Telemetry: cmd.Telemetry,
	})
	metrics.BroadcastDeliveries.Add(float64(delivered))
}

func (h *Hub) handleJoinSession(c *Client, cmd *Command) {
	// Syntax check only: a well-formed id joins its room even if no
	// session has been created for it yet.
	if !h.registry.ValidSessionID(cmd.SessionID) {
		h.dropCommand(c, "join_session", DropReasonMalformed)
		return
	}
	metrics.EventsDispatched.WithLabelValues("join_session").Inc()
	h.rooms.Join(cmd.SessionID, c)
	h.log.Debug().Str("client_id", c.ID).Str("session_id", cmd.SessionID).Msg("client joined room")

	sess, ok := h.registry.Session(cmd.SessionID)
	if !ok {
		return
	}
	// Snapshot for the late joiner only: setup before telemetry, so the
	// viewer can contextualize the numbers it is about to show.
	if sess.HasSetup() {
		h.rooms.Unicast(c, &Event{
			Kind:      EventSetupUpdate,
			SessionID: sess.ID,
			Timestamp: sess.SetupTimestamp,
			Setup:     sess.Setup,
		})
	}
	if sess.HasTelemetry() {
		h.rooms.Unicast(c, &Event{
			Kind:      EventTelemetryUpdate,
			SessionID: sess.ID,
			Telemetry: sess.Telemetry,
		})
	}
}

func (h *Hub) dropCommand(c *Client, eventType, reason string) {
	metrics.EventsDropped.WithLabelValues(reason).Inc()
	h.log.Warn().
		Str("client_id", c.ID).
		Str("event_type", eventType).
		Str("reason", reason).
		Msg("dropped inbound event")
}

// hasPayload treats a missing field and an explicit JSON null the same:
// not a publishable payload.
func hasPayload(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
