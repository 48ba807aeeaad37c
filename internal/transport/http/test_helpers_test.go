package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/bblair321/TeamChat/internal/auth"
	"github.com/bblair321/TeamChat/internal/config"
	"github.com/bblair321/TeamChat/internal/core"
	"github.com/bblair321/TeamChat/internal/proto"
	"github.com/bblair321/TeamChat/internal/store"
	"github.com/bblair321/TeamChat/internal/store/sqlite"
)

// Test-local collaborator adapters; the production ones live in internal/app,
// which cannot be imported here without a cycle.

type testValidator struct{ svc *auth.Service }

func (v testValidator) ValidateToken(token string) (core.Identity, error) {
	claims, err := v.svc.ValidateToken(token)
	if err != nil {
		return core.Identity{}, err
	}
	return core.Identity{ID: claims.UserID, Name: claims.Username}, nil
}

type testMessageStore struct{ st store.MessageStore }

func (m testMessageStore) StoreMessage(ctx context.Context, channelID, authorID int64, content string) (core.StoredMessage, error) {
	msg := &store.Message{ChannelID: channelID, UserID: authorID, Content: content}
	if err := m.st.SaveMessage(ctx, msg); err != nil {
		return core.StoredMessage{}, err
	}
	return core.StoredMessage{ID: msg.ID, CreatedAt: msg.CreatedAt}, nil
}

type testDirectory struct{ st store.UserStore }

func (d testDirectory) LookupUser(ctx context.Context, userID int64) (string, error) {
	user, err := d.st.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

func startTestServer(t *testing.T) (*httptest.Server, *auth.Service, *sqlite.SQLiteStore) {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	authService := auth.NewService(st, &auth.JWTConfig{
		Secret:   []byte("test-secret-change-me"),
		Issuer:   "test",
		Audience: "test",
		TTL:      time.Hour,
	})

	logger := zerolog.Nop()
	hub := core.NewHub(
		testValidator{svc: authService},
		testMessageStore{st: st},
		testDirectory{st: st},
		&logger,
	)

	cfg := config.Default()
	cfg.Addr = ":0"
	server := NewServer(hub, authService, st, cfg, &logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts, authService, st
}

func sendEvent(t *testing.T, ctx context.Context, conn *websocket.Conn, eventType string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s: %v", eventType, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: eventType, Data: payload}); err != nil {
		t.Fatalf("write %s: %v", eventType, err)
	}
}

// readUntil reads outbound events until one with the wanted type arrives and
// unmarshals its data into out.
func readUntil(t *testing.T, ctx context.Context, conn *websocket.Conn, eventType string, out any) {
	t.Helper()

	for {
		var outbound struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			t.Fatalf("read waiting for %s: %v", eventType, err)
		}
		if outbound.Type != eventType {
			continue
		}
		if out != nil {
			if err := json.Unmarshal(outbound.Data, out); err != nil {
				t.Fatalf("unmarshal %s data: %v", eventType, err)
			}
		}
		return
	}
}
