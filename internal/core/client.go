package core

import (
	"sync"

	"github.com/google/uuid"
)

// Client is one persistent connection as seen by the core layer. It owns the
// connection's room-membership set; no other component holds a strong
// reference to it across its lifetime.
type Client struct {
	ID     string
	Events chan *Event

	mu     sync.Mutex
	closed bool
	rooms  map[int64]struct{} // channels this connection joined
}

// NewClient constructs a client with a buffered outbound event channel.
func NewClient(buffer int) *Client {
	if buffer <= 0 {
		buffer = 32
	}
	return &Client{
		ID:     uuid.NewString(),
		Events: make(chan *Event, buffer),
		rooms:  make(map[int64]struct{}),
	}
}

// Deliver attempts a non-blocking send of an event to the client. It returns
// false when the client's buffer is full; a connection that cannot accept
// further events is treated as disconnected by the hub.
func (c *Client) Deliver(ev *Event) bool {
	select {
	case c.Events <- ev:
		return true
	default:
		return false
	}
}

// trackJoin records room membership. Caller holds the client lock and has
// already verified the client is not closed.
func (c *Client) trackJoin(channelID int64) {
	c.rooms[channelID] = struct{}{}
}

// trackLeave removes a membership record and reports whether the connection
// was a member. Leaving a room not joined is a no-op.
func (c *Client) trackLeave(channelID int64) bool {
	_, ok := c.rooms[channelID]
	if ok {
		delete(c.rooms, channelID)
	}
	return ok
}

// drain marks the client closed and hands back the channels it was still
// joined to. Subsequent calls return nothing, which makes the disconnect
// unwind idempotent.
func (c *Client) drain() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	channels := make([]int64, 0, len(c.rooms))
	for channelID := range c.rooms {
		channels = append(channels, channelID)
	}
	c.rooms = make(map[int64]struct{})
	return channels
}
