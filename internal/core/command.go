package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom subscribes the connection to a channel's room.
	CommandJoinRoom CommandKind = iota
	// CommandLeaveRoom unsubscribes the connection from a channel's room.
	CommandLeaveRoom
	// CommandSendMessage stores a chat message and broadcasts it.
	CommandSendMessage
	// CommandTyping broadcasts a transient typing indicator.
	CommandTyping
)

// Command represents a single decoded client event. Connections are not
// pre-authenticated: each command carries its own bearer token.
type Command struct {
	Kind      CommandKind
	Token     string
	ChannelID int64
	Content   string
	IsTyping  bool
}
