package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/onelap/pitwall-server/internal/config"
	"github.com/onelap/pitwall-server/internal/core"
	"github.com/onelap/pitwall-server/internal/proto"
)

func startTestServer(t *testing.T) (*httptest.Server, context.CancelFunc) {
	t.Helper()

	store := core.NewStore(nil)
	registry := core.NewRegistry(store)
	rooms := core.NewRooms()
	logger := zerolog.Nop()
	hub := core.NewHub(registry, rooms, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	server := NewServer(hub, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
		ClientBuffer:      32,
	}, &logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts, cancel
}

func dialWS(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

type outbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func send(t *testing.T, ctx context.Context, conn *websocket.Conn, eventType string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s: %v", eventType, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: eventType, Data: payload}); err != nil {
		t.Fatalf("write %s: %v", eventType, err)
	}
}

func recv(t *testing.T, ctx context.Context, conn *websocket.Conn) outbound {
	t.Helper()

	var out outbound
	if err := wsjson.Read(ctx, conn, &out); err != nil {
		t.Fatalf("read outbound: %v", err)
	}
	return out
}

func TestHealthEndpoint(t *testing.T) {
	ts, cancel := startTestServer(t)
	defer cancel()

	resp, err := ts.Client().Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestDashboardPageServedWithoutSession(t *testing.T) {
	ts, cancel := startTestServer(t)
	defer cancel()

	// The page never checks session existence; it waits on join_session.
	resp, err := ts.Client().Get(ts.URL + "/dashboard/11111111-1111-4111-8111-111111111111")
	if err != nil {
		t.Fatalf("dashboard request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "11111111-1111-4111-8111-111111111111") {
		t.Fatalf("dashboard page does not embed the session id")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts, cancel := startTestServer(t)
	defer cancel()

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "relay_connected_clients") {
		t.Fatalf("metrics output missing relay collectors")
	}
}

func TestProducerViewerRoundTrip(t *testing.T) {
	ts, cancel := startTestServer(t)
	defer cancel()

	ctx, closeCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCtx()

	producer := dialWS(t, ctx, ts)

	// Producer asks for a session.
	send(t, ctx, producer, proto.InboundTypeRequestSessionID, struct{}{})
	assigned := recv(t, ctx, producer)
	if assigned.Type != proto.OutboundTypeSessionAssigned {
		t.Fatalf("unexpected outbound type: %s", assigned.Type)
	}
	var assignedData proto.SessionAssignedData
	if err := json.Unmarshal(assigned.Data, &assignedData); err != nil {
		t.Fatalf("unmarshal session_id_assigned: %v", err)
	}
	if len(assignedData.SessionID) != 36 {
		t.Fatalf("assigned id is not canonical: %q", assignedData.SessionID)
	}

	// Producer publishes setup before any viewer exists.
	send(t, ctx, producer, proto.InboundTypeSetupData, proto.SetupData{
		SessionID: assignedData.SessionID,
		Timestamp: "2025-01-01T00:00:00Z",
		Setup:     json.RawMessage(`{"brake_bias":56.5}`),
	})

	// A late viewer joins and receives the setup snapshot.
	viewer := dialWS(t, ctx, ts)
	send(t, ctx, viewer, proto.InboundTypeJoinSession, proto.JoinSessionData{SessionID: assignedData.SessionID})

	snapshot := recv(t, ctx, viewer)
	if snapshot.Type != proto.OutboundTypeSetupUpdate {
		t.Fatalf("expected setup_update snapshot first, got %s", snapshot.Type)
	}
	var setupEv proto.SetupUpdateEvent
	if err := json.Unmarshal(snapshot.Data, &setupEv); err != nil {
		t.Fatalf("unmarshal setup_update: %v", err)
	}
	if setupEv.SessionID != assignedData.SessionID || setupEv.Timestamp != "2025-01-01T00:00:00Z" {
		t.Fatalf("unexpected snapshot: %+v", setupEv)
	}

	// Live telemetry now reaches the joined viewer.
	send(t, ctx, producer, proto.InboundTypeTelemetryUpdate, proto.TelemetryData{
		SessionID: assignedData.SessionID,
		Telemetry: json.RawMessage(`{"lap":3,"fuel":72.5}`),
	})

	live := recv(t, ctx, viewer)
	if live.Type != proto.OutboundTypeTelemetryUpdate {
		t.Fatalf("expected telemetry_update broadcast, got %s", live.Type)
	}
	var telemetryEv proto.TelemetryUpdateEvent
	if err := json.Unmarshal(live.Data, &telemetryEv); err != nil {
		t.Fatalf("unmarshal telemetry_update: %v", err)
	}
	var payload map[string]float64
	if err := json.Unmarshal(telemetryEv.Telemetry, &payload); err != nil {
		t.Fatalf("unmarshal telemetry payload: %v", err)
	}
	if payload["lap"] != 3 || payload["fuel"] != 72.5 {
		t.Fatalf("unexpected telemetry payload: %v", payload)
	}
}

func TestUndecodableFrameKeepsConnectionOpen(t *testing.T) {
	ts, cancel := startTestServer(t)
	defer cancel()

	ctx, closeCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCtx()

	producer := dialWS(t, ctx, ts)

	// Unknown event type and garbage data are dropped, not fatal.
	send(t, ctx, producer, "no_such_event", struct{}{})
	if err := wsjson.Write(ctx, producer, proto.Inbound{Type: proto.InboundTypeSetupData, Data: json.RawMessage(`"not an object"`)}); err != nil {
		t.Fatalf("write garbage: %v", err)
	}

	// The connection still serves well-formed traffic.
	send(t, ctx, producer, proto.InboundTypeRequestSessionID, struct{}{})
	assigned := recv(t, ctx, producer)
	if assigned.Type != proto.OutboundTypeSessionAssigned {
		t.Fatalf("connection did not survive bad frames, got %s", assigned.Type)
	}
}
