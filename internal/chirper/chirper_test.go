package chirper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"chirper/internal/config"
	"chirper/internal/notify"
	"chirper/internal/pool"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	to, msg string
	err     error
}

func (r *recorder) Send(ctx context.Context, recipient, message string) error {
	r.to, r.msg = recipient, message
	return r.err
}

type echoAI struct{}

func (echoAI) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
		{Message: openai.ChatCompletionMessage{Content: "generated " + req.Messages[1].Content}},
	}}, nil
}

func writeData(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestBuildAndRender(t *testing.T) {
	dir := writeData(t, map[string]string{
		"templates.txt": "good morning <nickname>. <compliment>!\n",
		"nicknames.txt": "sunshine\n",
	})
	cfg := config.Config{
		Chirper:   config.ChirperConfig{DataDir: dir},
		Templates: config.PoolConfig{Source: "templates.txt"},
		Placeholders: []config.PlaceholderConfig{
			{Key: "<nickname>", Source: "nicknames.txt"},
			{Key: "<compliment>", Items: []string{"you look <look>"}, Placeholders: []config.PlaceholderConfig{
				{Key: "<look>", Items: []string{"radiant"}},
			}},
		},
	}
	r, err := Build(context.Background(), cfg, Deps{})
	require.NoError(t, err)
	assert.Equal(t, []string{"<nickname>", "<compliment>"}, r.Keys())
	assert.Equal(t, "good morning sunshine. You look radiant!", r.Render(context.Background()))
}

func TestBuildMissingSourceDegrades(t *testing.T) {
	dir := writeData(t, map[string]string{"templates.txt": "hi <food> fan\n"})
	cfg := config.Config{
		Chirper:      config.ChirperConfig{DataDir: dir},
		Templates:    config.PoolConfig{Source: "templates.txt"},
		Placeholders: []config.PlaceholderConfig{{Key: "<food>", Source: "food.txt"}},
	}
	r, err := Build(context.Background(), cfg, Deps{})
	require.NoError(t, err)
	assert.Equal(t, "hi  fan", r.Render(context.Background()))
}

func TestBuildPromptUsesAI(t *testing.T) {
	cfg := config.Config{
		Templates: config.PoolConfig{Items: []string{"you are <thing>"}},
		Placeholders: []config.PlaceholderConfig{
			{Key: "<thing>", Prompt: "a compliment", Items: []string{"fallback"}},
		},
	}
	r, err := Build(context.Background(), cfg, Deps{AI: echoAI{}, AIModel: "m"})
	require.NoError(t, err)
	assert.Equal(t, "you are generated a compliment", r.Render(context.Background()))

	r, err = Build(context.Background(), cfg, Deps{})
	require.NoError(t, err)
	assert.Equal(t, "you are fallback", r.Render(context.Background()))
}

func TestBuildCustomLoader(t *testing.T) {
	l := pool.LoaderFunc(func(ctx context.Context, id string) ([]string, error) {
		return []string{"from " + id}, nil
	})
	cfg := config.Config{Templates: config.PoolConfig{Source: "redis:templates"}}
	r, err := Build(context.Background(), cfg, Deps{Loader: l})
	require.NoError(t, err)
	assert.Equal(t, "from redis:templates", r.Render(context.Background()))
}

func TestChirp(t *testing.T) {
	rec := &recorder{}
	c := &Chirper{Templates: pool.New("t", []string{"hello"}, nil), Notifier: rec, Recipient: "+1"}
	require.NoError(t, c.Chirp(context.Background()))
	assert.Equal(t, "+1", rec.to)
	assert.Equal(t, "hello", rec.msg)
}

func TestChirpSurfacesDeliveryFailure(t *testing.T) {
	boom := errors.New("boom")
	c := &Chirper{Templates: pool.New("t", []string{"hello"}, nil), Notifier: &recorder{err: boom}, Recipient: "+1"}
	assert.ErrorIs(t, c.Chirp(context.Background()), boom)
}

func TestChirpRefusesEmptyRender(t *testing.T) {
	rec := &recorder{}
	c := &Chirper{Templates: pool.New("t", nil, nil), Notifier: rec, Recipient: "+1"}
	assert.ErrorIs(t, c.Chirp(context.Background()), notify.ErrEmptyMessage)
	assert.Empty(t, rec.msg)
}

func TestNewNotifier(t *testing.T) {
	cfg := config.Config{}
	cfg.FillDefaults()

	_, err := NewNotifier(cfg, config.Credentials{}, os.Stdout)
	assert.ErrorIs(t, err, notify.ErrMissingCredential)

	n, err := NewNotifier(cfg, config.Credentials{TwilioAccountSID: "AC", TwilioAuthToken: "t", TwilioServiceSID: "MG"}, os.Stdout)
	require.NoError(t, err)
	assert.IsType(t, &notify.Twilio{}, n)

	cfg.Chirper.Transport = "stdout"
	n, err = NewNotifier(cfg, config.Credentials{}, os.Stdout)
	require.NoError(t, err)
	assert.IsType(t, &notify.Writer{}, n)

	cfg.Chirper.Transport = "telegram"
	_, err = NewNotifier(cfg, config.Credentials{}, os.Stdout)
	assert.ErrorIs(t, err, notify.ErrMissingCredential)
}
