package core

// Client is one connected peer as seen by the core layer. The transport
// feeds decoded commands into Commands and drains Events back out; the
// core never talks to a socket directly.
//
// Rooms is the set of session ids the client is subscribed to. It is
// maintained by Rooms under its lock so disconnect cleanup does not
// have to scan every room.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event
	Rooms    map[string]struct{}

	// done is closed by the hub on unregister so the command pump for
	// this client can exit instead of waiting on Commands forever.
	done chan struct{}
}

// NewClient constructs a client with initialized channels. buffer sizes
// the Commands and Events channels; zero or negative picks a small default.
func NewClient(id string, buffer int) *Client {
	if buffer <= 0 {
		buffer = 16
	}
	return &Client{
		ID:       id,
		Commands: make(chan *Command, buffer),
		Events:   make(chan *Event, buffer),
		Rooms:    make(map[string]struct{}),
		done:     make(chan struct{}),
	}
}
