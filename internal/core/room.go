package core

import "sync"

// Room groups connections subscribed to the same channel. Each room carries
// its own lock so that unrelated rooms never contend; the lock guards the
// fan-out set and the presence registry as one unit. Members map to the
// identity they joined under, which is authoritative for presence.
type Room struct {
	ChannelID int64

	mu      sync.Mutex
	gone    bool // set when the registry reaped the empty room
	members map[*Client]Identity
	online  *presence
}

func newRoom(channelID int64) *Room {
	return &Room{
		ChannelID: channelID,
		members:   make(map[*Client]Identity),
		online:    newPresence(),
	}
}

// join adds the connection to the fan-out set and updates presence. A
// re-join under a different identity moves the connection's presence stake
// from the old identity to the new one in the same critical section, so
// refcounts never drift. The second result is false when the room has been
// reaped and the caller must retry against the registry.
func (r *Room) join(c *Client, ident Identity) (changed, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gone {
		return false, false
	}
	if prev, exists := r.members[c]; exists {
		if prev.ID == ident.ID {
			r.members[c] = ident
			return false, true
		}
		left := r.online.decrement(prev.ID)
		entered := r.online.increment(ident)
		r.members[c] = ident
		return left || entered, true
	}
	r.members[c] = ident
	return r.online.increment(ident), true
}

// leave is the exact inverse of join and is idempotent: removing a
// connection that is not a member is a no-op. The identity recorded at join
// time drives the presence decrement. The second result reports whether the
// room is now empty.
func (r *Room) leave(c *Client) (changed, empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ident, exists := r.members[c]
	if !exists {
		return false, len(r.members) == 0
	}
	delete(r.members, c)
	changed = r.online.decrement(ident.ID)
	return changed, len(r.members) == 0
}

// broadcast delivers an event to every member present at broadcast start.
// Delivery is a bounded, non-blocking attempt per member; connections that
// cannot accept the event are returned so the hub can unwind them, and they
// never fail the broadcast for other members. A nil except skips nobody.
func (r *Room) broadcast(ev *Event, except *Client) []*Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	var failed []*Client
	for member := range r.members {
		if member == except {
			continue
		}
		if !member.Deliver(ev) {
			failed = append(failed, member)
		}
	}
	return failed
}

// snapshot returns the room's presence state after the latest change.
func (r *Room) snapshot() (int, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.online.snapshot()
}

// markGone flags the room as reaped. Callers hold the registry lock; the
// room lock is taken here to fence against an in-flight join.
func (r *Room) markGone() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.members) > 0 {
		return false
	}
	r.gone = true
	return true
}
