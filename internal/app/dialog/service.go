// Package dialog drives the multi-turn mood-logging conversation:
// idle → ask_mood → ask_notes → idle.
package dialog

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/equilibriumhq/equilibrium-bot/internal/app/history"
	"github.com/equilibriumhq/equilibrium-bot/internal/domain"
	"github.com/equilibriumhq/equilibrium-bot/internal/observability"
)

type Service struct {
	sessions  domain.SessionStore
	moods     domain.MoodStore
	tips      domain.TipClient
	messenger domain.Messenger
	history   *history.Service
	now       func() time.Time
}

func NewService(
	sessions domain.SessionStore,
	moods domain.MoodStore,
	tips domain.TipClient,
	messenger domain.Messenger,
	historySvc *history.Service,
) *Service {
	return &Service{
		sessions:  sessions,
		moods:     moods,
		tips:      tips,
		messenger: messenger,
		history:   historySvc,
		now:       time.Now,
	}
}

// HandleUpdate routes one inbound update through the state machine.
func (s *Service) HandleUpdate(ctx context.Context, upd domain.Update) error {
	log := observability.LoggerFromContext(ctx).With(
		"chat_id", upd.ChatID,
		"user_id", upd.UserID,
	)

	switch {
	case upd.Command != "":
		return s.handleCommand(ctx, upd)
	case upd.IsCallback():
		return s.handleCallback(ctx, upd)
	case upd.Text != "":
		return s.handleText(ctx, upd)
	}

	log.Info("ignoring empty update")
	return nil
}

func (s *Service) handleCommand(ctx context.Context, upd domain.Update) error {
	switch upd.Command {
	case "start":
		s.sessions.Delete(upd.ChatID)
		return s.messenger.SendText(ctx, upd.ChatID, welcomeText, mainMenuKeyboard())

	case "cancel":
		return s.cancel(ctx, upd.ChatID)

	case "logmood":
		if strings.TrimSpace(upd.Args) == "" {
			return s.beginMoodDialog(ctx, upd)
		}
		return s.logMoodOneShot(ctx, upd)

	case "history":
		return s.history.Show(ctx, upd.ChatID, domain.UserKey(upd.UserID))

	case "help":
		return s.messenger.SendText(ctx, upd.ChatID, helpText, mainMenuKeyboard())
	}

	observability.LoggerFromContext(ctx).Info("unknown command", "command", upd.Command)
	return s.messenger.SendText(ctx, upd.ChatID, helpText, mainMenuKeyboard())
}

func (s *Service) handleText(ctx context.Context, upd domain.Update) error {
	switch upd.Text {
	case logMoodButton:
		return s.beginMoodDialog(ctx, upd)
	case historyButton:
		return s.history.Show(ctx, upd.ChatID, domain.UserKey(upd.UserID))
	case settingsButton:
		return s.messenger.SendText(ctx, upd.ChatID, settingsText, mainMenuKeyboard())
	case helpButton:
		return s.messenger.SendText(ctx, upd.ChatID, helpText, mainMenuKeyboard())
	}

	if sess, ok := s.sessions.Get(upd.ChatID); ok && sess.State == domain.StateAskNotes {
		return s.finishEntry(ctx, upd.ChatID, sess.UserID, sess.Mood, upd.Text)
	}

	return s.messenger.SendText(ctx, upd.ChatID, endText, mainMenuKeyboard())
}

func (s *Service) handleCallback(ctx context.Context, upd domain.Update) error {
	log := observability.LoggerFromContext(ctx).With("chat_id", upd.ChatID)

	// Ack first so the client drops the button spinner; best effort.
	if upd.CallbackID != "" {
		if err := s.messenger.AnswerCallback(ctx, upd.CallbackID); err != nil {
			log.Warn("failed to answer callback", "error", err)
		}
	}

	sess, ok := s.sessions.Get(upd.ChatID)
	if !ok {
		log.Info("callback without active session", "data", upd.CallbackData)
		return nil
	}

	switch sess.State {
	case domain.StateAskMood:
		mood, err := strconv.Atoi(upd.CallbackData)
		if err != nil || domain.ValidateMood(mood) != nil {
			log.Info("ignoring unexpected callback in ask_mood", "data", upd.CallbackData)
			return nil
		}
		sess.State = domain.StateAskNotes
		sess.Mood = mood
		sess.UpdatedAt = s.now()
		s.sessions.Put(sess)
		return s.messenger.EditText(ctx, upd.ChatID, upd.CallbackMessageID, selectedMoodText(mood), skipNotesKeyboard())

	case domain.StateAskNotes:
		if upd.CallbackData == skipNotesData {
			return s.finishEntry(ctx, upd.ChatID, sess.UserID, sess.Mood, "")
		}
	}

	log.Info("ignoring stale callback", "data", upd.CallbackData, "state", string(sess.State))
	return nil
}

func (s *Service) beginMoodDialog(ctx context.Context, upd domain.Update) error {
	s.sessions.Put(&domain.Session{
		ChatID:    upd.ChatID,
		UserID:    upd.UserID,
		State:     domain.StateAskMood,
		UpdatedAt: s.now(),
	})
	return s.messenger.SendText(ctx, upd.ChatID, askMoodText, moodKeyboard())
}

// logMoodOneShot handles "/logmood 4 Great day!" without entering the
// dialogue.
func (s *Service) logMoodOneShot(ctx context.Context, upd domain.Update) error {
	fields := strings.Fields(upd.Args)
	mood, err := strconv.Atoi(fields[0])
	if err != nil || domain.ValidateMood(mood) != nil {
		// Validation errors become a retry prompt, never a failure.
		return s.messenger.SendText(ctx, upd.ChatID, invalidMoodText, nil)
	}
	notes := strings.Join(fields[1:], " ")
	return s.finishEntry(ctx, upd.ChatID, upd.UserID, mood, notes)
}

func (s *Service) cancel(ctx context.Context, chatID int64) error {
	s.sessions.Delete(chatID)
	return s.messenger.SendText(ctx, chatID, cancelText, mainMenuKeyboard())
}

// finishEntry persists the mood, asks for a tip, and confirms. The
// conversation is over when this is called, whatever the outcome.
func (s *Service) finishEntry(ctx context.Context, chatID, userID int64, mood int, notes string) error {
	log := observability.LoggerFromContext(ctx).With(
		"chat_id", chatID,
		"mood", mood,
	)
	s.sessions.Delete(chatID)

	entry := domain.NewMoodEntry(domain.UserKey(userID), mood, notes, s.now())
	if err := s.moods.Append(ctx, entry); err != nil {
		// Abort before the tip request; the store error stays in the logs.
		log.Error("failed to save mood entry", "error", err)
		return s.messenger.SendText(ctx, chatID, saveMoodFailureText, mainMenuKeyboard())
	}

	tip, err := s.tips.TipFor(ctx, mood)
	if err != nil {
		log.Warn("tip request failed, omitting tip", "error", err)
		tip = ""
	}

	log.Info("mood entry saved", "has_notes", notes != "", "has_tip", tip != "")
	return s.messenger.SendText(ctx, chatID, savedText(mood, tip), mainMenuKeyboard())
}
