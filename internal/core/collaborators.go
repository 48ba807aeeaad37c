package core

import (
	"context"
	"time"
)

// Identity is an authenticated user reference resolved from a bearer token.
// It is immutable for the lifetime of a room membership and is never cached
// beyond a connection's lifetime.
type Identity struct {
	ID   int64
	Name string
}

// StoredMessage is the durable record returned by the message store. The
// store is authoritative for message id and timestamp; broadcast payloads
// are built from this value, never from locally-computed ones.
type StoredMessage struct {
	ID        int64
	CreatedAt time.Time
}

// TokenValidator resolves a bearer token into an identity. It has no side
// effects and must be safe to call concurrently.
type TokenValidator interface {
	ValidateToken(token string) (Identity, error)
}

// MessageStore durably appends chat messages. A nil error means the write
// survives a subsequent crash.
type MessageStore interface {
	StoreMessage(ctx context.Context, channelID, authorID int64, content string) (StoredMessage, error)
}

// UserDirectory resolves a user id into a display name.
type UserDirectory interface {
	LookupUser(ctx context.Context, userID int64) (string, error)
}
