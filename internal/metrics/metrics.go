package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Relay metrics
var (
	// SessionsCreated counts sessions handed out to producers.
	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_sessions_created_total",
			Help: "Total sessions created via request_session_id",
		},
	)

	// EventsDispatched counts inbound events the dispatcher acted on, by type.
	EventsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_events_dispatched_total",
			Help: "Inbound events dispatched by event type",
		},
		[]string{"type"},
	)

	// EventsDropped counts inbound events discarded without effect, by reason.
	EventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_events_dropped_total",
			Help: "Inbound events dropped by reason (malformed, unknown_session, unknown_type)",
		},
		[]string{"reason"},
	)

	// BroadcastDeliveries counts individual event deliveries to room members.
	BroadcastDeliveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_broadcast_deliveries_total",
			Help: "Total per-connection deliveries across all room broadcasts",
		},
	)

	// ConnectedClients tracks currently registered connections.
	ConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "relay_connected_clients",
			Help: "Currently connected clients across all rooms",
		},
	)

	// ActiveRooms tracks rooms ever opened; rooms are never deleted, so
	// this only grows within a process lifetime.
	ActiveRooms = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "relay_active_rooms",
			Help: "Rooms opened since process start",
		},
	)
)
