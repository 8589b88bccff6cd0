// Package history renders a user's recent mood entries as a chart.
package history

import (
	"context"
	"sort"

	"github.com/equilibriumhq/equilibrium-bot/internal/domain"
	"github.com/equilibriumhq/equilibrium-bot/internal/observability"
)

const (
	notFoundText = "📭 No mood history found. Start tracking with /logmood"
	captionText  = "📈 Your Mood History (Last 30 days)"
	failureText  = "⚠️ Failed to generate history. Please try again."

	defaultLimit = 30
)

type Service struct {
	moods     domain.MoodStore
	renderer  domain.ChartRenderer
	messenger domain.Messenger
	limit     int
}

func NewService(moods domain.MoodStore, renderer domain.ChartRenderer, messenger domain.Messenger, limit int) *Service {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Service{
		moods:     moods,
		renderer:  renderer,
		messenger: messenger,
		limit:     limit,
	}
}

// Show sends the user their mood chart, or a "no history" note when they
// have never logged a mood. Failures collapse to a generic failure message;
// store and render errors are never surfaced verbatim.
func (s *Service) Show(ctx context.Context, chatID int64, userKey string) error {
	log := observability.LoggerFromContext(ctx).With(
		"chat_id", chatID,
		"user_key", userKey,
	)

	entries, err := s.moods.ListRecent(ctx, userKey, s.limit)
	if err != nil {
		log.Error("failed to load mood history", "error", err)
		return s.messenger.SendText(ctx, chatID, failureText, nil)
	}
	if len(entries) == 0 {
		return s.messenger.SendText(ctx, chatID, notFoundText, nil)
	}

	points, err := timelinePoints(entries)
	if err != nil {
		log.Error("failed to decode mood history", "error", err)
		return s.messenger.SendText(ctx, chatID, failureText, nil)
	}

	png, err := s.renderer.RenderTimeline(points)
	if err != nil {
		log.Error("failed to render mood chart", "error", err)
		return s.messenger.SendText(ctx, chatID, failureText, nil)
	}

	log.Info("mood history rendered", "points", len(points))
	return s.messenger.SendPhoto(ctx, chatID, png, captionText)
}

// timelinePoints decodes entry timestamps and re-sorts ascending for
// charting. The query asks for descending order so its limit captures the
// most recent entries; the two orderings are deliberate, not interchangeable.
func timelinePoints(entries []*domain.MoodEntry) ([]domain.MoodPoint, error) {
	points := make([]domain.MoodPoint, 0, len(entries))
	for _, e := range entries {
		at, err := domain.ParseSortKeyTime(e.SortKey)
		if err != nil {
			return nil, err
		}
		points = append(points, domain.MoodPoint{At: at, Mood: e.Mood})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].At.Before(points[j].At) })
	return points, nil
}
