package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// User represents a registered account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Channel represents a chat channel. The real-time core treats channel ids
// as opaque grouping keys; channels are created through the REST surface.
type Channel struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Message represents a persisted chat message. ID and CreatedAt are
// assigned by the store on save and are authoritative.
type Message struct {
	ID        int64
	ChannelID int64
	UserID    int64
	Content   string
	CreatedAt time.Time
}

// UserStore handles user persistence.
type UserStore interface {
	// CreateUser creates a new user with a hashed password.
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id int64) (*User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

// ChannelStore handles channel persistence.
type ChannelStore interface {
	// CreateChannel creates a new channel with a unique name.
	CreateChannel(ctx context.Context, name string) (*Channel, error)

	// GetChannelByName retrieves a channel by name.
	GetChannelByName(ctx context.Context, name string) (*Channel, error)

	// ListChannels lists all channels.
	ListChannels(ctx context.Context) ([]*Channel, error)
}

// MessageStore handles message persistence. SaveMessage is durable on
// success: once it returns nil the record survives a crash.
type MessageStore interface {
	// SaveMessage persists a message and fills in its ID and CreatedAt.
	SaveMessage(ctx context.Context, msg *Message) error

	// ListMessages returns a channel's messages in timestamp order.
	ListMessages(ctx context.Context, channelID int64) ([]*Message, error)
}

// Store aggregates all storage interfaces.
type Store interface {
	UserStore
	ChannelStore
	MessageStore

	// Close closes the underlying database connection.
	Close() error
}
