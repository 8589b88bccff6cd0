package domain

import "time"

// ConversationState is the dialogue position of one chat.
type ConversationState string

const (
	StateIdle     ConversationState = "idle"
	StateAskMood  ConversationState = "ask_mood"
	StateAskNotes ConversationState = "ask_notes"
)

// Session is the transient per-conversation context: the dialogue state plus
// the mood-in-progress. It is never persisted and is discarded whenever the
// conversation returns to idle.
type Session struct {
	ChatID    int64
	UserID    int64
	State     ConversationState
	Mood      int
	UpdatedAt time.Time
}

// SessionStore keeps sessions for in-flight conversations. Implementations
// are transient by design: a warm process remembers, a cold start forgets.
type SessionStore interface {
	Get(chatID int64) (*Session, bool)
	Put(session *Session)
	Delete(chatID int64)
}
