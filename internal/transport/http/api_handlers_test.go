package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/bblair321/TeamChat/internal/store"
)

func postJSON(t *testing.T, url string, body any, token string) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getJSON(t *testing.T, url, token string, out any) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	ts, _, _ := startTestServer(t)

	resp := postJSON(t, ts.URL+"/auth/register", RegisterRequest{Username: "alice", Password: "password123"}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status: %d", resp.StatusCode)
	}
	var created AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil || created.Token == "" {
		t.Fatalf("register response: %v %+v", err, created)
	}

	resp = postJSON(t, ts.URL+"/auth/register", RegisterRequest{Username: "alice", Password: "password123"}, "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register status: %d", resp.StatusCode)
	}

	resp = postJSON(t, ts.URL+"/auth/login", LoginRequest{Username: "alice", Password: "password123"}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status: %d", resp.StatusCode)
	}

	resp = postJSON(t, ts.URL+"/auth/login", LoginRequest{Username: "alice", Password: "wrong"}, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login status: %d", resp.StatusCode)
	}
}

func TestChannelEndpointsRequireAuth(t *testing.T) {
	ts, _, _ := startTestServer(t)

	resp := getJSON(t, ts.URL+"/chat/channels", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}
}

func TestChannelCreateAndList(t *testing.T) {
	ts, authService, _ := startTestServer(t)
	ctx := context.Background()

	token, err := authService.Register(ctx, "alice", "password123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	resp := postJSON(t, ts.URL+"/chat/channels", ChannelRequest{Name: "General"}, token)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create channel status: %d", resp.StatusCode)
	}

	resp = postJSON(t, ts.URL+"/chat/channels", ChannelRequest{Name: "General"}, token)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate channel status: %d", resp.StatusCode)
	}

	var channels []ChannelResponse
	resp = getJSON(t, ts.URL+"/chat/channels", token, &channels)
	if resp.StatusCode != http.StatusOK || len(channels) != 1 || channels[0].Name != "General" {
		t.Fatalf("list channels: %d %+v", resp.StatusCode, channels)
	}
}

func TestMessageHistory(t *testing.T) {
	ts, authService, st := startTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	token, err := authService.Register(ctx, "alice", "password123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	user, err := st.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("lookup alice: %v", err)
	}
	channel, err := st.CreateChannel(ctx, "General")
	if err != nil {
		t.Fatalf("create channel: %v", err)
	}

	for _, content := range []string{"first", "second"} {
		if err := st.SaveMessage(ctx, &store.Message{ChannelID: channel.ID, UserID: user.ID, Content: content}); err != nil {
			t.Fatalf("save message: %v", err)
		}
	}

	var history []MessageResponse
	resp := getJSON(t, ts.URL+fmt.Sprintf("/chat/messages/%d", channel.ID), token, &history)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history status: %d", resp.StatusCode)
	}
	if len(history) != 2 || history[0].Content != "first" || history[1].User != "alice" {
		t.Fatalf("unexpected history: %+v", history)
	}
	if history[0].Time == "" {
		t.Fatalf("missing timestamp in history entry")
	}

	resp = getJSON(t, ts.URL+"/chat/messages/not-a-number", token, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid channel id status: %d", resp.StatusCode)
	}
}
