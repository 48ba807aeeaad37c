package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Hub is the single entry point for decoded client events. It authenticates
// every command independently (connections are not pre-authenticated),
// routes it to the matching handler, and owns the room registry. Handlers
// run concurrently across connections; a failing command is reported to its
// own connection and never disturbs others in flight.
type Hub struct {
	auth  TokenValidator
	store MessageStore
	users UserDirectory
	rooms *Rooms
	log   *zerolog.Logger
}

// NewHub builds a hub around the three boundary collaborators.
func NewHub(auth TokenValidator, store MessageStore, users UserDirectory, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		auth:  auth,
		store: store,
		users: users,
		rooms: NewRooms(),
		log:   logger,
	}
}

// RegisterClient greets a freshly accepted connection.
func (h *Hub) RegisterClient(c *Client) {
	c.Deliver(statusEvent("Connected to chat server"))
	h.log.Debug().Str("client_id", c.ID).Msg("client connected")
}

// UnregisterClient unwinds a disconnected connection: it is removed from
// every room it joined, presence is decremented, and rooms whose presence
// set changed get a fresh online status. Safe to call more than once; only
// the first call performs the unwind.
func (h *Hub) UnregisterClient(c *Client) {
	channels := c.drain()
	if channels == nil {
		return
	}
	for _, channelID := range channels {
		if h.rooms.Leave(channelID, c) {
			h.notifyPresence(channelID)
		}
	}
	h.log.Debug().Str("client_id", c.ID).Int("rooms", len(channels)).Msg("client disconnected")
}

// Dispatch validates and executes one client command. Handler failures are
// mapped to a unicast error event; nothing is raised to the caller.
func (h *Hub) Dispatch(ctx context.Context, c *Client, cmd *Command) {
	if cmd == nil {
		return
	}

	var cerr *Error
	switch cmd.Kind {
	case CommandJoinRoom:
		cerr = h.handleJoin(ctx, c, cmd)
	case CommandLeaveRoom:
		cerr = h.handleLeave(c, cmd)
	case CommandSendMessage:
		cerr = h.handleSend(ctx, c, cmd)
	case CommandTyping:
		cerr = h.handleTyping(ctx, c, cmd)
	default:
		cerr = validationError("Unknown command")
	}

	if cerr != nil {
		h.log.Debug().Str("client_id", c.ID).Str("code", cerr.Code).Msg(cerr.Message)
		h.unicast(c, errorEvent(cerr))
	}
}

func (h *Hub) handleJoin(ctx context.Context, c *Client, cmd *Command) *Error {
	if cmd.ChannelID == 0 {
		return validationError("No channel ID provided")
	}
	ident, cerr := h.resolveIdentity(ctx, cmd.Token)
	if cerr != nil {
		return cerr
	}

	// Membership changes for one connection are serialized against its own
	// disconnect unwind; a join that loses that race must not resurrect the
	// connection inside the room.
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	changed := h.rooms.Join(cmd.ChannelID, c, ident)
	c.trackJoin(cmd.ChannelID)
	c.mu.Unlock()

	h.log.Info().
		Str("client_id", c.ID).
		Int64("user_id", ident.ID).
		Int64("channel_id", cmd.ChannelID).
		Msg("user joined channel")

	h.unicast(c, statusEvent(fmt.Sprintf("Joined channel %d", cmd.ChannelID)))
	if changed {
		h.notifyPresence(cmd.ChannelID)
	}
	return nil
}

// handleLeave tolerates both a missing token and double invocation. The
// identity recorded at join time is authoritative for the presence
// decrement, so a token is only verified when the client supplies one.
func (h *Hub) handleLeave(c *Client, cmd *Command) *Error {
	if cmd.ChannelID == 0 {
		return validationError("No channel ID provided")
	}
	if cmd.Token != "" {
		if _, err := h.auth.ValidateToken(cmd.Token); err != nil {
			return authError("Invalid token")
		}
	}

	c.mu.Lock()
	var changed bool
	if c.trackLeave(cmd.ChannelID) {
		changed = h.rooms.Leave(cmd.ChannelID, c)
	}
	c.mu.Unlock()

	h.unicast(c, statusEvent(fmt.Sprintf("Left channel %d", cmd.ChannelID)))
	if changed {
		h.notifyPresence(cmd.ChannelID)
	}
	return nil
}

// handleSend stores the message durably before any broadcast. A store
// failure suppresses the broadcast entirely; the payload is built from the
// store's returned id and timestamp.
func (h *Hub) handleSend(ctx context.Context, c *Client, cmd *Command) *Error {
	if cmd.ChannelID == 0 || strings.TrimSpace(cmd.Content) == "" {
		return validationError("Missing channel ID or content")
	}
	ident, cerr := h.resolveIdentity(ctx, cmd.Token)
	if cerr != nil {
		return cerr
	}

	stored, err := h.store.StoreMessage(ctx, cmd.ChannelID, ident.ID, cmd.Content)
	if err != nil {
		h.log.Error().Err(err).
			Int64("user_id", ident.ID).
			Int64("channel_id", cmd.ChannelID).
			Msg("store message")
		return storeError("Failed to send message")
	}

	failed := h.rooms.Broadcast(cmd.ChannelID, &Event{
		Kind: EventNewMessage,
		Message: &MessageEvent{
			ID:        stored.ID,
			ChannelID: cmd.ChannelID,
			User:      ident.Name,
			Content:   cmd.Content,
			Time:      stored.CreatedAt,
		},
	}, nil)
	h.drop(failed)
	return nil
}

// handleTyping broadcasts a transient indicator to everyone in the room but
// the sender. Best-effort: no persistence, no acknowledgment.
func (h *Hub) handleTyping(ctx context.Context, c *Client, cmd *Command) *Error {
	if cmd.ChannelID == 0 {
		return validationError("No channel ID provided")
	}
	ident, cerr := h.resolveIdentity(ctx, cmd.Token)
	if cerr != nil {
		return cerr
	}

	failed := h.rooms.Broadcast(cmd.ChannelID, &Event{
		Kind:   EventUserTyping,
		Typing: &TypingEvent{User: ident.Name, IsTyping: cmd.IsTyping},
	}, c)
	h.drop(failed)
	return nil
}

// resolveIdentity authenticates the token and resolves the display name
// through the user directory. The directory is consulted on every event so
// a deleted account stops resolving immediately.
func (h *Hub) resolveIdentity(ctx context.Context, token string) (Identity, *Error) {
	if token == "" {
		return Identity{}, authError("No token provided")
	}
	ident, err := h.auth.ValidateToken(token)
	if err != nil {
		return Identity{}, authError("Invalid token")
	}
	name, err := h.users.LookupUser(ctx, ident.ID)
	if err != nil {
		return Identity{}, notFoundError("User not found")
	}
	ident.Name = name
	return ident, nil
}

// notifyPresence broadcasts the room's presence snapshot taken after the
// change that triggered it.
func (h *Hub) notifyPresence(channelID int64) {
	count, users := h.rooms.Snapshot(channelID)
	failed := h.rooms.Broadcast(channelID, &Event{
		Kind: EventOnlineStatus,
		Online: &OnlineStatus{
			ChannelID:   channelID,
			OnlineCount: count,
			OnlineUsers: users,
		},
	}, nil)
	h.drop(failed)
}

// unicast delivers an event to a single connection; one that cannot accept
// it is treated as disconnected.
func (h *Hub) unicast(c *Client, ev *Event) {
	if !c.Deliver(ev) {
		h.UnregisterClient(c)
	}
}

// drop unwinds connections that failed a broadcast delivery. Each is
// unwound at most once regardless of how many broadcasts reported it.
func (h *Hub) drop(failed []*Client) {
	for _, c := range failed {
		h.UnregisterClient(c)
	}
}
