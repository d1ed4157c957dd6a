package ai

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Completer is the slice of the OpenAI client the generator needs.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Config struct {
	APIKey  string
	BaseURL string // optional
}

// NewClient builds an OpenAI client, honouring a custom base URL.
func NewClient(cfg Config) (*openai.Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("openai api key is empty")
	}
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		return openai.NewClientWithConfig(cc), nil
	}
	return openai.NewClient(cfg.APIKey), nil
}

// Generator asks a chat model for one short phrase per draw. It backs a
// placeholder the same way a pool does.
type Generator struct {
	client  Completer
	model   string
	prompt  string
	timeout time.Duration
}

func NewGenerator(client Completer, model, prompt string) *Generator {
	return &Generator{client: client, model: model, prompt: prompt, timeout: 30 * time.Second}
}

const system = `You write a single short phrase that is dropped verbatim into the middle of a friendly text message.
Reply with the phrase only: no quotes, no trailing punctuation, no explanation, at most eight words.`

// Draw returns a generated phrase, or "" when the request fails.
func (g *Generator) Draw(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: g.prompt},
		},
		Temperature: 1.0,
		MaxTokens:   32,
	})
	if err != nil {
		slog.Warn("openai: generate phrase failed", "error", err)
		return ""
	}
	if len(resp.Choices) == 0 {
		slog.Warn("openai: empty completion")
		return ""
	}
	return clean(resp.Choices[0].Message.Content)
}

// clean keeps the first line and strips wrapping quotes and end punctuation.
func clean(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.Trim(s, "\"'`“”")
	s = strings.TrimRight(s, ".!?")
	return strings.TrimSpace(s)
}
