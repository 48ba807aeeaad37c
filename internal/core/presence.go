package core

import "sort"

// presence tracks, for one room, the mapping from identity to display name
// and the number of live connections that identity has in the room. A user
// with two browser tabs joined to the same channel appears once with a
// connection count of two. Mutated only under the owning room's lock.
type presence struct {
	entries map[int64]*presenceEntry
}

type presenceEntry struct {
	name  string
	conns int
}

func newPresence() *presence {
	return &presence{entries: make(map[int64]*presenceEntry)}
}

// increment adds one live connection for the identity. It reports true when
// the identity entered the presence set (count went 0 -> 1).
func (p *presence) increment(ident Identity) bool {
	if e, ok := p.entries[ident.ID]; ok {
		e.conns++
		e.name = ident.Name
		return false
	}
	p.entries[ident.ID] = &presenceEntry{name: ident.Name, conns: 1}
	return true
}

// decrement removes one live connection for the identity. It reports true
// when the identity left the presence set (count went 1 -> 0). Decrementing
// an absent identity is a no-op.
func (p *presence) decrement(userID int64) bool {
	e, ok := p.entries[userID]
	if !ok {
		return false
	}
	e.conns--
	if e.conns > 0 {
		return false
	}
	delete(p.entries, userID)
	return true
}

// snapshot returns the current count and display names. Names are sorted so
// the payload is stable for observers and tests.
func (p *presence) snapshot() (int, []string) {
	names := make([]string, 0, len(p.entries))
	for _, e := range p.entries {
		names = append(names, e.name)
	}
	sort.Strings(names)
	return len(names), names
}
