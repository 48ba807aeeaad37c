package proto

import "encoding/json"

// Inbound is the envelope for events coming from the client. Every event
// carries its own token inside Data; the connection itself is never
// pre-authenticated.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoinRoom    = "join_room"
	InboundTypeLeaveRoom   = "leave_room"
	InboundTypeSendMessage = "send_message"
	InboundTypeTyping      = "typing"

	OutboundTypeStatus       = "status"
	OutboundTypeError        = "error"
	OutboundTypeNewMessage   = "new_message"
	OutboundTypeOnlineStatus = "online_status"
	OutboundTypeUserTyping   = "user_typing"
)

// JoinRoomData subscribes the connection to a channel.
type JoinRoomData struct {
	Token     string `json:"token"`
	ChannelID int64  `json:"channel_id"`
}

// LeaveRoomData unsubscribes the connection from a channel. The token is
// optional; membership recorded at join time is enough to leave.
type LeaveRoomData struct {
	Token     string `json:"token,omitempty"`
	ChannelID int64  `json:"channel_id"`
}

// SendMessageData is a chat message from the client.
type SendMessageData struct {
	Token     string `json:"token"`
	ChannelID int64  `json:"channel_id"`
	Content   string `json:"content"`
}

// TypingData is a transient typing indicator from the client.
type TypingData struct {
	Token     string `json:"token"`
	ChannelID int64  `json:"channel_id"`
	IsTyping  bool   `json:"is_typing"`
}

// Outbound is the envelope for events sent to the client.
type Outbound struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// StatusData acknowledges a command to the originating connection.
type StatusData struct {
	Msg string `json:"msg"`
}

// ErrorData reports a failed command to the originating connection.
type ErrorData struct {
	Code string `json:"code,omitempty"`
	Msg  string `json:"msg"`
}

// NewMessageData is a stored chat message broadcast to a channel. ID and
// Time are the message store's values.
type NewMessageData struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	User      string `json:"user"`
	Time      string `json:"time"`
	ChannelID int64  `json:"channel_id"`
}

// OnlineStatusData is the presence snapshot broadcast after a change.
type OnlineStatusData struct {
	ChannelID   int64    `json:"channel_id"`
	OnlineCount int      `json:"online_count"`
	OnlineUsers []string `json:"online_users"`
}

// UserTypingData notifies a channel that a user is typing, sender excluded.
type UserTypingData struct {
	User     string `json:"user"`
	IsTyping bool   `json:"is_typing"`
}
