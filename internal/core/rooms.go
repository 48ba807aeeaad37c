package core

import "sync"

// Rooms is the registry of live rooms, indexed by channel id. The registry
// lock only guards the map; every room serializes its own state, so joins
// and broadcasts in unrelated rooms proceed independently. Rooms are created
// lazily on first join and reaped once their last member leaves.
type Rooms struct {
	mu    sync.RWMutex
	rooms map[int64]*Room
}

// NewRooms constructs an empty registry.
func NewRooms() *Rooms {
	return &Rooms{rooms: make(map[int64]*Room)}
}

// Join adds the connection to the channel's room under the given identity
// and reports whether the presence set changed.
func (rs *Rooms) Join(channelID int64, c *Client, ident Identity) bool {
	for {
		room := rs.getOrCreate(channelID)
		changed, ok := room.join(c, ident)
		if ok {
			return changed
		}
		// Lost a race with the reaper; the map entry is stale.
	}
}

// Leave removes the connection from the channel's room and reports whether
// the presence set changed. Leaving an unknown room is a no-op.
func (rs *Rooms) Leave(channelID int64, c *Client) bool {
	room := rs.get(channelID)
	if room == nil {
		return false
	}
	changed, empty := room.leave(c)
	if empty {
		rs.reap(channelID, room)
	}
	return changed
}

// Broadcast delivers an event to every member of the channel's room except
// the given connection (nil to include everyone). It returns the members
// that could not accept the event.
func (rs *Rooms) Broadcast(channelID int64, ev *Event, except *Client) []*Client {
	room := rs.get(channelID)
	if room == nil {
		return nil
	}
	return room.broadcast(ev, except)
}

// Snapshot returns the channel's presence state: member count and display
// names. A channel with no room reports empty presence.
func (rs *Rooms) Snapshot(channelID int64) (int, []string) {
	room := rs.get(channelID)
	if room == nil {
		return 0, []string{}
	}
	return room.snapshot()
}

func (rs *Rooms) get(channelID int64) *Room {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.rooms[channelID]
}

func (rs *Rooms) getOrCreate(channelID int64) *Room {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	room, ok := rs.rooms[channelID]
	if !ok {
		room = newRoom(channelID)
		rs.rooms[channelID] = room
	}
	return room
}

// reap deletes the room if it is still empty and still the registered one.
// markGone fences against a join that raced the reap: such a join retries
// and recreates the room.
func (rs *Rooms) reap(channelID int64, room *Room) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.rooms[channelID] != room {
		return
	}
	if room.markGone() {
		delete(rs.rooms, channelID)
	}
}
