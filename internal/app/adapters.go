package app

import (
	"context"

	"github.com/bblair321/TeamChat/internal/auth"
	"github.com/bblair321/TeamChat/internal/core"
	"github.com/bblair321/TeamChat/internal/store"
)

// The core depends on three narrow collaborator contracts. These adapters
// bind them to the auth service and the persistent store.

type tokenValidator struct {
	svc *auth.Service
}

func (v tokenValidator) ValidateToken(token string) (core.Identity, error) {
	claims, err := v.svc.ValidateToken(token)
	if err != nil {
		return core.Identity{}, err
	}
	return core.Identity{ID: claims.UserID, Name: claims.Username}, nil
}

type messageStore struct {
	st store.MessageStore
}

func (m messageStore) StoreMessage(ctx context.Context, channelID, authorID int64, content string) (core.StoredMessage, error) {
	msg := &store.Message{
		ChannelID: channelID,
		UserID:    authorID,
		Content:   content,
	}
	if err := m.st.SaveMessage(ctx, msg); err != nil {
		return core.StoredMessage{}, err
	}
	return core.StoredMessage{ID: msg.ID, CreatedAt: msg.CreatedAt}, nil
}

type userDirectory struct {
	st store.UserStore
}

func (d userDirectory) LookupUser(ctx context.Context, userID int64) (string, error) {
	user, err := d.st.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Username, nil
}
