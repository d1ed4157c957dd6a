package notify

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Telegram sends messages to a chat through a bot.
type Telegram struct {
	bot *tele.Bot
}

// NewTelegram creates an offline bot; it never polls for updates. An empty
// apiURL uses the public Bot API.
func NewTelegram(token, apiURL string) (*Telegram, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: telegram bot token is required", ErrMissingCredential)
	}
	b, err := tele.NewBot(tele.Settings{
		URL:     strings.TrimRight(apiURL, "/"),
		Token:   token,
		Offline: true,
	})
	if err != nil {
		return nil, err
	}
	return &Telegram{bot: b}, nil
}

// Send posts message to the chat whose numeric ID is recipient.
func (t *Telegram) Send(ctx context.Context, recipient, message string) error {
	if t == nil {
		return errors.New("nil telegram client")
	}
	if strings.TrimSpace(message) == "" {
		return ErrEmptyMessage
	}
	id, err := strconv.ParseInt(strings.TrimSpace(recipient), 10, 64)
	if err != nil {
		return fmt.Errorf("telegram recipient must be a chat id: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err = t.bot.Send(&tele.Chat{ID: id}, message)
	return err
}
