package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

var (
	// ErrEmptyMessage is returned instead of delivering a blank message.
	ErrEmptyMessage = errors.New("empty message")
	// ErrMissingCredential is returned when a transport lacks its secrets.
	ErrMissingCredential = errors.New("missing credential")
)

// Notifier delivers a rendered message to a recipient.
type Notifier interface {
	Send(ctx context.Context, recipient, message string) error
}

// Writer prints messages to W instead of delivering them.
type Writer struct {
	mu sync.Mutex
	W  io.Writer
}

func NewWriter(w io.Writer) *Writer { return &Writer{W: w} }

func (n *Writer) Send(ctx context.Context, recipient, message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrEmptyMessage
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprintf(n.W, "to=%s %s\n", recipient, message)
	return err
}
