package core

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func newTestHub(t *testing.T) (*Hub, *Store, context.CancelFunc) {
	t.Helper()

	store := NewStore(clockwork.NewFakeClock())
	registry := NewRegistry(store)
	rooms := NewRooms()
	hub := NewHub(registry, rooms, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	return hub, store, cancel
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
			t.Fatalf("expected event kind %v, got %+v", kind, ev)
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func mustNoEvent(t *testing.T, ch <-chan *Event) {
	t.Helper()

	time.Sleep(100 * time.Millisecond)
	select {
	case ev, ok := <-ch:
		if ok {
			t.Fatalf("expected no event, got %+v", ev)
		}
	default:
	}
}

// waitMembers blocks until sessionID's room reaches n members. Joins
// from different clients land asynchronously relative to publishes.
func waitMembers(t *testing.T, rooms *Rooms, sessionID string, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if rooms.MemberCount(sessionID) == n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("room %q never reached %d members", sessionID, n)
}

func waitClosed(t *testing.T, ch <-chan *Event) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatal("channel was not closed")
}
