// Package telegram adapts the Bot API to the domain's Messenger port and
// normalizes inbound updates.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/equilibriumhq/equilibrium-bot/internal/domain"
)

// Client implements domain.Messenger over the Telegram Bot API.
type Client struct {
	bot *tgbotapi.BotAPI
}

func NewClient(token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}
	return &Client{bot: bot}, nil
}

// Updates opens a long-poll update channel for local mode.
func (c *Client) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	return c.bot.GetUpdatesChan(u)
}

func (c *Client) SendText(ctx context.Context, chatID int64, text string, kb *domain.Keyboard) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if mk := markup(kb); mk != nil {
		msg.ReplyMarkup = mk
	}
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send text: %w: %w", domain.ErrExternalService, err)
	}
	return nil
}

func (c *Client) SendPhoto(ctx context.Context, chatID int64, photo []byte, caption string) error {
	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "mood-history.png", Bytes: photo})
	msg.Caption = caption
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send photo: %w: %w", domain.ErrExternalService, err)
	}
	return nil
}

func (c *Client) EditText(ctx context.Context, chatID int64, messageID int, text string, kb *domain.Keyboard) error {
	var cfg tgbotapi.Chattable
	if kb != nil && len(kb.Inline) > 0 {
		cfg = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, inlineMarkup(kb.Inline))
	} else {
		cfg = tgbotapi.NewEditMessageText(chatID, messageID, text)
	}
	if _, err := c.bot.Send(cfg); err != nil {
		return fmt.Errorf("telegram edit message: %w: %w", domain.ErrExternalService, err)
	}
	return nil
}

// AnswerCallback acknowledges a callback query so the client stops showing
// the progress spinner.
func (c *Client) AnswerCallback(ctx context.Context, callbackID string) error {
	if _, err := c.bot.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		return fmt.Errorf("telegram answer callback: %w: %w", domain.ErrExternalService, err)
	}
	return nil
}

// markup converts the domain keyboard into the Bot API form. Inline wins
// when both are set; Keyboard documents that at most one is.
func markup(kb *domain.Keyboard) interface{} {
	if kb == nil {
		return nil
	}
	if len(kb.Inline) > 0 {
		return inlineMarkup(kb.Inline)
	}
	if len(kb.Reply) > 0 {
		rows := make([][]tgbotapi.KeyboardButton, 0, len(kb.Reply))
		for _, labels := range kb.Reply {
			row := make([]tgbotapi.KeyboardButton, 0, len(labels))
			for _, label := range labels {
				row = append(row, tgbotapi.NewKeyboardButton(label))
			}
			rows = append(rows, row)
		}
		return tgbotapi.NewReplyKeyboard(rows...)
	}
	return nil
}

func inlineMarkup(rows [][]domain.InlineButton) tgbotapi.InlineKeyboardMarkup {
	out := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, buttons := range rows {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(buttons))
		for _, b := range buttons {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
		}
		out = append(out, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(out...)
}
