package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bblair321/TeamChat/internal/store"
)

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS channels (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	channel_id INTEGER NOT NULL REFERENCES channels(id),
	user_id    INTEGER NOT NULL REFERENCES users(id),
	content    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_messages_channel ON messages(channel_id, created_at);
`

// New creates a new SQLite store and bootstraps the schema.
// dbPath is the path to the SQLite database file.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ==== UserStore implementation ====

// CreateUser creates a new user with hashed password.
func (s *SQLiteStore) CreateUser(ctx context.Context, username, passwordHash string) (*store.User, error) {
	query := `
		INSERT INTO users (username, password_hash)
		VALUES (?, ?)
	`
	result, err := s.db.ExecContext(ctx, query, username, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	return s.GetUserByID(ctx, id)
}

// GetUserByID retrieves a user by ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id int64) (*store.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE id = ?
	`
	var user store.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*store.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = ?
	`
	var user store.User
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &user, nil
}

// ==== ChannelStore implementation ====

// CreateChannel creates a new channel with a unique name.
func (s *SQLiteStore) CreateChannel(ctx context.Context, name string) (*store.Channel, error) {
	result, err := s.db.ExecContext(ctx, `INSERT INTO channels (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("insert channel: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	return s.getChannelByID(ctx, id)
}

// GetChannelByName retrieves a channel by name.
func (s *SQLiteStore) GetChannelByName(ctx context.Context, name string) (*store.Channel, error) {
	query := `
		SELECT id, name, created_at
		FROM channels
		WHERE name = ?
	`
	var ch store.Channel
	err := s.db.QueryRowContext(ctx, query, name).Scan(&ch.ID, &ch.Name, &ch.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("query channel: %w", err)
	}

	return &ch, nil
}

// ListChannels lists all channels.
func (s *SQLiteStore) ListChannels(ctx context.Context) ([]*store.Channel, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM channels ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query channels: %w", err)
	}
	defer rows.Close()

	var channels []*store.Channel
	for rows.Next() {
		var ch store.Channel
		if err := rows.Scan(&ch.ID, &ch.Name, &ch.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		channels = append(channels, &ch)
	}
	return channels, rows.Err()
}

func (s *SQLiteStore) getChannelByID(ctx context.Context, id int64) (*store.Channel, error) {
	query := `
		SELECT id, name, created_at
		FROM channels
		WHERE id = ?
	`
	var ch store.Channel
	err := s.db.QueryRowContext(ctx, query, id).Scan(&ch.ID, &ch.Name, &ch.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("query channel: %w", err)
	}

	return &ch, nil
}

// ==== MessageStore implementation ====

// SaveMessage persists a message. The database assigns the id and the
// timestamp; both are read back into msg so callers broadcast exactly what
// was stored.
func (s *SQLiteStore) SaveMessage(ctx context.Context, msg *store.Message) error {
	query := `
		INSERT INTO messages (channel_id, user_id, content)
		VALUES (?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query, msg.ChannelID, msg.UserID, msg.Content)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `SELECT created_at FROM messages WHERE id = ?`, id)
	if err := row.Scan(&msg.CreatedAt); err != nil {
		return fmt.Errorf("read back message: %w", err)
	}
	msg.ID = id
	return nil
}

// ListMessages returns a channel's messages in timestamp order.
func (s *SQLiteStore) ListMessages(ctx context.Context, channelID int64) ([]*store.Message, error) {
	query := `
		SELECT id, channel_id, user_id, content, created_at
		FROM messages
		WHERE channel_id = ?
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, channelID)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var messages []*store.Message
	for rows.Next() {
		var msg store.Message
		if err := rows.Scan(&msg.ID, &msg.ChannelID, &msg.UserID, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}
