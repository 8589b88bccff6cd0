// Package reminder fans a reminder message out to every user who has ever
// logged a mood.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/equilibriumhq/equilibrium-bot/internal/domain"
	"github.com/equilibriumhq/equilibrium-bot/internal/observability"
)

const reminderText = "🌞 Good morning! How are you feeling today?\n" +
	"Use /logmood [1-5] to track your mood."

type Service struct {
	moods     domain.MoodStore
	messenger domain.Messenger
	// concurrency bounds concurrent sends; 0 means unbounded, one
	// in-flight send per user.
	concurrency int
}

func NewService(moods domain.MoodStore, messenger domain.Messenger, concurrency int) *Service {
	return &Service{
		moods:       moods,
		messenger:   messenger,
		concurrency: concurrency,
	}
}

// Report aggregates one fan-out run.
type Report struct {
	Users int
	Sent  int
}

// Run scans the distinct users and sends each a reminder. Sends are issued
// concurrently with no ordering guarantee; each failure is isolated, logged,
// and counted, never propagated. Only the initial scan can fail the run.
func (s *Service) Run(ctx context.Context) (Report, error) {
	log := observability.LoggerFromContext(ctx)

	userKeys, err := s.moods.ListUserKeys(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("listing users for reminders: %w", err)
	}
	if len(userKeys) == 0 {
		log.Info("no users to remind")
		return Report{}, nil
	}

	var sem chan struct{}
	if s.concurrency > 0 {
		sem = make(chan struct{}, s.concurrency)
	}

	var wg sync.WaitGroup
	var sent atomic.Int64
	for _, key := range userKeys {
		wg.Add(1)
		go func(userKey string) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			if err := s.sendOne(ctx, userKey); err != nil {
				log.Warn("reminder delivery failed", "user_key", userKey, "error", err)
				return
			}
			sent.Add(1)
		}(key)
	}
	wg.Wait()

	report := Report{Users: len(userKeys), Sent: int(sent.Load())}
	log.Info("reminder fan-out finished", "users", report.Users, "sent", report.Sent)
	return report, nil
}

func (s *Service) sendOne(ctx context.Context, userKey string) error {
	chatID, err := domain.PlatformUserID(userKey)
	if err != nil {
		return err
	}
	return s.messenger.SendText(ctx, chatID, reminderText, nil)
}
