package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

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
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v: %+v", kind, ev)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// stubAuth resolves fixed tokens to identities; anything else fails.
type stubAuth struct {
	idents map[string]Identity
}

func (s *stubAuth) ValidateToken(token string) (Identity, error) {
	ident, ok := s.idents[token]
	if !ok {
		return Identity{}, errors.New("token is invalid or expired")
	}
	return ident, nil
}

// stubStore assigns sequential ids and a fixed timestamp; it can be made to
// fail deterministically.
type stubStore struct {
	mu     sync.Mutex
	nextID int64
	now    time.Time
	fail   bool
	calls  int
}

func (s *stubStore) StoreMessage(_ context.Context, _, _ int64, _ string) (StoredMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.fail {
		return StoredMessage{}, errors.New("disk full")
	}
	s.nextID++
	return StoredMessage{ID: s.nextID, CreatedAt: s.now}, nil
}

func (s *stubStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// stubDirectory resolves user ids to display names.
type stubDirectory struct {
	names map[int64]string
}

func (s *stubDirectory) LookupUser(_ context.Context, userID int64) (string, error) {
	name, ok := s.names[userID]
	if !ok {
		return "", errors.New("no such user")
	}
	return name, nil
}

// newTestHub builds a hub with one known identity per user name:
// token "tok-<name>" resolves to the identity with the same name.
func newTestHub(users ...Identity) (*Hub, *stubStore) {
	auth := &stubAuth{idents: make(map[string]Identity)}
	dir := &stubDirectory{names: make(map[int64]string)}
	for _, u := range users {
		auth.idents["tok-"+u.Name] = u
		dir.names[u.ID] = u.Name
	}
	st := &stubStore{nextID: 0, now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	return NewHub(auth, st, dir, nil), st
}
