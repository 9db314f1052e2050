package domain

import "time"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// SessionIDLayout is the time layout session ids are minted from.
// Lexicographic order of ids equals chronological order of creation.
const SessionIDLayout = "20060102_150405"

// Message is one turn in a conversation.
type Message struct {
	// Role is "user" or "assistant" ("system" never persists).
	Role string

	// Content is the message text.
	Content string
}

// Session is one ordered, persisted conversation. Messages are strictly
// append-only: past entries are never mutated.
type Session struct {
	// ID is the sortable session identifier (SessionIDLayout).
	ID string

	// UpdatedAt is stamped on every save.
	UpdatedAt time.Time

	// Messages are the turns in chronological order.
	Messages []Message
}

// SessionInfo is the listing view of a session, without its messages.
type SessionInfo struct {
	// ID is the session identifier.
	ID string

	// UpdatedAt is when the session was last saved.
	UpdatedAt time.Time

	// MessageCount is the number of turns in the session.
	MessageCount int
}

// NewSessionID mints a fresh session id from the given time.
func NewSessionID(now time.Time) string {
	return now.Format(SessionIDLayout)
}
