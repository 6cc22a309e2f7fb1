package core

import (
	"sync"

	"github.com/onelap/pitwall-server/internal/metrics"
)

// Room is the delivery set for one session id.
type Room struct {
	ID      string
	clients map[*Client]struct{}
}

// NewRoom constructs a room with no members.
func NewRoom(id string) *Room {
	return &Room{
		ID:      id,
		clients: make(map[*Client]struct{}),
	}
}

// AddClient inserts a client into the room. Returns true if newly added.
func (r *Room) AddClient(c *Client) bool {
	if _, exists := r.clients[c]; exists {
		return false
	}
	r.clients[c] = struct{}{}
	return true
}

// RemoveClient deletes a client from the room. Returns true if removed.
func (r *Room) RemoveClient(c *Client) bool {
	if _, exists := r.clients[c]; !exists {
		return false
	}
	delete(r.clients, c)
	return true
}

// Broadcast sends an event to all members and returns the delivery
// count. Sends never block; a full client buffer drops that delivery.
func (r *Room) Broadcast(event *Event) int {
	delivered := 0
	for client := range r.clients {
		select {
		case client.Events <- event:
			delivered++
		default:
			// Drop if slow consumer.
		}
	}
	return delivered
}

// Empty returns true if no clients are in the room.
func (r *Room) Empty() bool {
	return len(r.clients) == 0
}

// Rooms maps session ids to their delivery sets. A room is a logical
// address: it is created on first join and outlives its membership, and
// its existence says nothing about whether a session with that id has
// been created. That split is what lets a dashboard open its link
// before the producer starts sending.
type Rooms struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRooms builds an empty room table.
func NewRooms() *Rooms {
	return &Rooms{rooms: make(map[string]*Room)}
}

// Join subscribes the client to sessionID, creating the room if needed.
// It always succeeds.
func (rs *Rooms) Join(sessionID string, c *Client) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	room, ok := rs.rooms[sessionID]
	if !ok {
		room = NewRoom(sessionID)
		rs.rooms[sessionID] = room
		metrics.ActiveRooms.Inc()
	}
	if room.AddClient(c) {
		c.Rooms[sessionID] = struct{}{}
	}
}

// Leave removes the client from every room it belongs to. Rooms left
// empty stay in the table and accept future joins.
func (rs *Rooms) Leave(c *Client) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	for sessionID := range c.Rooms {
		if room, ok := rs.rooms[sessionID]; ok {
			room.RemoveClient(c)
		}
		delete(c.Rooms, sessionID)
	}
}

// Broadcast delivers event to every current member of sessionID's room
// and returns the delivery count. An unknown or empty room is a
// successful no-op.
func (rs *Rooms) Broadcast(sessionID string, event *Event) int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	room, ok := rs.rooms[sessionID]
	if !ok {
		return 0
	}
	return room.Broadcast(event)
}

// Unicast delivers event to a single client, bypassing room membership.
// Used for late-join snapshots.
func (rs *Rooms) Unicast(c *Client, event *Event) {
	select {
	case c.Events <- event:
	default:
	}
}

// MemberCount returns the current size of sessionID's room.
func (rs *Rooms) MemberCount(sessionID string) int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	room, ok := rs.rooms[sessionID]
	if !ok {
		return 0
	}
	return len(room.clients)
}
