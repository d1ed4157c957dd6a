package chirper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"chirper/internal/notify"
	"chirper/internal/pool"
)

// Chirper renders one message and sends it to a single recipient.
type Chirper struct {
	Templates pool.Source
	Notifier  notify.Notifier
	Recipient string
	Timeout   time.Duration // per send; zero means no extra deadline
}

// Chirp renders and delivers one message. A failed delivery is returned to
// the caller and not retried.
func (c *Chirper) Chirp(ctx context.Context) error {
	msg := c.Templates.Draw(ctx)
	if strings.TrimSpace(msg) == "" {
		return fmt.Errorf("chirp: %w", notify.ErrEmptyMessage)
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	if err := c.Notifier.Send(ctx, c.Recipient, msg); err != nil {
		return fmt.Errorf("chirp: send to %s: %w", c.Recipient, err)
	}
	slog.Info("chirp: sent", "recipient", c.Recipient, "chars", len([]rune(msg)))
	return nil
}
