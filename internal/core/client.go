package core

import "sync"

// Client is one connected participant as seen by the core layer. The
// transport writes commands into Commands and drains Events; the hub owns
// everything else.
type Client struct {
	ID string
	// Room is the room this connection joined, empty until the join
	// command lands. Written only by the hub goroutine.
	Room string

	Commands chan *Command
	Events   chan *Event

	closeOnce sync.Once
}

// NewClient constructs a client with buffered channels. A zero or negative
// buffer falls back to the default.
func NewClient(id string, buffer int) *Client {
	if buffer <= 0 {
		buffer = 32
	}
	return &Client{
		ID:       id,
		Commands: make(chan *Command, buffer),
		Events:   make(chan *Event, buffer),
	}
}

// closeCommands is idempotent; the hub's command pump exits when the
// channel drains.
func (c *Client) closeCommands() {
	c.closeOnce.Do(func() { close(c.Commands) })
}
