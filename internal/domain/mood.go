package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// Platform is the chat platform prefix used in user keys.
	Platform = "telegram"

	// RecordTypeMood tags mood records; the table can host other record
	// kinds later, discriminated by this tag and the sort-key prefix.
	RecordTypeMood = "mood"

	// MoodKeyPrefix is the sort-key prefix for mood records.
	MoodKeyPrefix = "mood#"
)

// MoodEntry is one logged mood. Entries are append-only: never updated or
// deleted after creation.
type MoodEntry struct {
	UserKey string
	SortKey string
	Mood    int
	Notes   string
	Type    string
}

// UserKey builds the partition key for a platform user, e.g. "telegram_42".
func UserKey(platformUserID int64) string {
	return Platform + "_" + strconv.FormatInt(platformUserID, 10)
}

// PlatformUserID recovers the numeric platform user ID from a user key.
func PlatformUserID(userKey string) (int64, error) {
	platform, rest, ok := strings.Cut(userKey, "_")
	if !ok || platform != Platform {
		return 0, fmt.Errorf("user key %q: %w", userKey, ErrMalformedKey)
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("user key %q: %w", userKey, ErrMalformedKey)
	}
	return id, nil
}

// SortKey encodes a timestamp as "mood#<unix-seconds>", with fractional
// seconds preserved. Lexicographic order matches time order for entries
// within the same epoch-second digit width.
func SortKey(t time.Time) string {
	sec := float64(t.UnixNano()) / float64(time.Second)
	return MoodKeyPrefix + strconv.FormatFloat(sec, 'f', -1, 64)
}

// ParseSortKeyTime decodes the timestamp out of a mood sort key. Anything
// that is not exactly "mood#<number>" fails with ErrMalformedKey; the same
// key space will host other record types distinguished only by prefix.
func ParseSortKeyTime(sortKey string) (time.Time, error) {
	rest, ok := strings.CutPrefix(sortKey, MoodKeyPrefix)
	if !ok || rest == "" || strings.Contains(rest, "#") {
		return time.Time{}, fmt.Errorf("sort key %q: %w", sortKey, ErrMalformedKey)
	}
	sec, err := strconv.ParseFloat(rest, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("sort key %q: %w", sortKey, ErrMalformedKey)
	}
	return time.Unix(0, int64(math.Round(sec*1e9))).UTC(), nil
}

// ValidateMood enforces the [1,5] range at the boundary, before anything is
// persisted.
func ValidateMood(mood int) error {
	if mood < 1 || mood > 5 {
		return fmt.Errorf("mood %d: %w", mood, ErrInvalidMood)
	}
	return nil
}

// NewMoodEntry builds a mood record stamped with the given wall-clock time.
// The caller guarantees mood has already been validated.
func NewMoodEntry(userKey string, mood int, notes string, now time.Time) *MoodEntry {
	return &MoodEntry{
		UserKey: userKey,
		SortKey: SortKey(now),
		Mood:    mood,
		Notes:   notes,
		Type:    RecordTypeMood,
	}
}
