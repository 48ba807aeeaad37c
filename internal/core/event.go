package core

import "time"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventStatus is a unicast acknowledgment to the originating client.
	EventStatus EventKind = iota
	// EventError reports a failed command to the originating client only.
	EventError
	// EventNewMessage notifies room members about a stored chat message.
	EventNewMessage
	// EventOnlineStatus notifies room members about a presence change.
	EventOnlineStatus
	// EventUserTyping is a transient typing indicator, sender excluded.
	EventUserTyping
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind    EventKind
	Msg     string         // EventStatus
	Err     *Error         // EventError
	Message *MessageEvent  // EventNewMessage
	Online  *OnlineStatus  // EventOnlineStatus
	Typing  *TypingEvent   // EventUserTyping
}

// MessageEvent carries a broadcast chat message. ID and Time come from the
// message store, never from the handler.
type MessageEvent struct {
	ID        int64
	ChannelID int64
	User      string
	Content   string
	Time      time.Time
}

// OnlineStatus is the read-only presence snapshot for a room, taken after
// the change it reports.
type OnlineStatus struct {
	ChannelID   int64
	OnlineCount int
	OnlineUsers []string
}

// TypingEvent reports that a user started or stopped typing.
type TypingEvent struct {
	User     string
	IsTyping bool
}

func statusEvent(msg string) *Event {
	return &Event{Kind: EventStatus, Msg: msg}
}

func errorEvent(err *Error) *Event {
	return &Event{Kind: EventError, Err: err}
}
