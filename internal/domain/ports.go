package domain

import (
	"context"
	"time"
)

// MoodStore defines mood-entry persistence.
type MoodStore interface {
	// Append writes one entry. Upsert semantics by primary key, no
	// conditional writes.
	Append(ctx context.Context, entry *MoodEntry) error

	// ListRecent returns up to limit entries for a user, newest first.
	ListRecent(ctx context.Context, userKey string, limit int) ([]*MoodEntry, error)

	// ListUserKeys returns the distinct user keys that have logged at
	// least one mood.
	ListUserKeys(ctx context.Context) ([]string, error)
}

// TipClient requests one short wellness tip for a logged mood. Callers treat
// an error as "omit the tip", never as a reason to fail the surrounding
// operation.
type TipClient interface {
	TipFor(ctx context.Context, mood int) (string, error)
}

// Messenger defines how the core application talks back to the chat
// platform.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string, kb *Keyboard) error
	SendPhoto(ctx context.Context, chatID int64, photo []byte, caption string) error
	EditText(ctx context.Context, chatID int64, messageID int, text string, kb *Keyboard) error
	AnswerCallback(ctx context.Context, callbackID string) error
}

// Keyboard describes either a reply keyboard (rows of labels) or an inline
// keyboard (rows of buttons with opaque callback payloads). At most one of
// the two is set.
type Keyboard struct {
	Reply  [][]string
	Inline [][]InlineButton
}

// InlineButton is one inline-keyboard button.
type InlineButton struct {
	Label string
	Data  string
}

// ChartRenderer draws a mood timeline as an image.
type ChartRenderer interface {
	RenderTimeline(points []MoodPoint) ([]byte, error)
}

// MoodPoint is one decoded sample on the mood timeline.
type MoodPoint struct {
	At   time.Time
	Mood int
}
