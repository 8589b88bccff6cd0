package telegram

import (
	"encoding/json"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/equilibriumhq/equilibrium-bot/internal/domain"
)

// ParseUpdate decodes a raw webhook body. ok is false for update kinds this
// bot does not handle (edits, channel posts, etc.); those are acknowledged
// and dropped.
func ParseUpdate(body []byte) (domain.Update, bool, error) {
	var upd tgbotapi.Update
	if err := json.Unmarshal(body, &upd); err != nil {
		return domain.Update{}, false, fmt.Errorf("decoding update: %w", err)
	}
	out, ok := FromBotUpdate(upd)
	return out, ok, nil
}

// FromBotUpdate maps a Bot API update to the normalized domain form.
func FromBotUpdate(upd tgbotapi.Update) (domain.Update, bool) {
	switch {
	case upd.CallbackQuery != nil:
		cq := upd.CallbackQuery
		if cq.Message == nil || cq.Message.Chat == nil || cq.From == nil {
			return domain.Update{}, false
		}
		return domain.Update{
			ChatID:            cq.Message.Chat.ID,
			UserID:            cq.From.ID,
			FirstName:         cq.From.FirstName,
			CallbackData:      cq.Data,
			CallbackID:        cq.ID,
			CallbackMessageID: cq.Message.MessageID,
		}, true

	case upd.Message != nil:
		m := upd.Message
		if m.Chat == nil || m.From == nil {
			return domain.Update{}, false
		}
		out := domain.Update{
			ChatID:    m.Chat.ID,
			UserID:    m.From.ID,
			FirstName: m.From.FirstName,
		}
		if m.IsCommand() {
			out.Command = m.Command()
			out.Args = m.CommandArguments()
		} else {
			out.Text = m.Text
		}
		return out, true
	}
	return domain.Update{}, false
}
