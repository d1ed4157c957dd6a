package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"chirper/internal/schedule"
)

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// ChirperConfig controls who gets chirped and when.
type ChirperConfig struct {
	Recipient    string `mapstructure:"recipient"`
	EarliestHour int    `mapstructure:"earliest_hour"`
	LatestHour   int    `mapstructure:"latest_hour"`
	CatchUpToday *bool  `mapstructure:"catch_up_today"` // fire at once if today's slot passed; default true
	Transport    string `mapstructure:"transport"`      // twilio, telegram or stdout
	DataDir      string `mapstructure:"data_dir"`       // base for relative pool files
	SendTimeout  string `mapstructure:"send_timeout"`   // duration string, e.g., "20s"
}

// PoolConfig names where a pool's strings come from. Source wins over Items.
type PoolConfig struct {
	Source string   `mapstructure:"source"` // file path, or redis:<key>
	Items  []string `mapstructure:"items"`
}

// PlaceholderConfig binds a literal key to a pool, an AI prompt, or a
// nested template set with its own placeholders.
type PlaceholderConfig struct {
	Key          string              `mapstructure:"key"` // e.g., <adjective>
	Source       string              `mapstructure:"source"`
	Items        []string            `mapstructure:"items"`
	Prompt       string              `mapstructure:"prompt"` // generate with OpenAI instead of a pool
	Placeholders []PlaceholderConfig `mapstructure:"placeholders"`
}

// Pool returns the pool part of the placeholder.
func (p PlaceholderConfig) Pool() PoolConfig {
	return PoolConfig{Source: p.Source, Items: p.Items}
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// OpenAIConfig controls the optional phrase generator. The API key comes
// from OPENAI_API_KEY.
type OpenAIConfig struct {
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// TwilioConfig overrides the Twilio endpoint.
type TwilioConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// TelegramConfig overrides the Bot API endpoint.
type TelegramConfig struct {
	APIURL string `mapstructure:"api_url"`
}

// Config is the top-level configuration structure.
type Config struct {
	App          AppConfig           `mapstructure:"app"`
	Chirper      ChirperConfig       `mapstructure:"chirper"`
	Templates    PoolConfig          `mapstructure:"templates"`
	Placeholders []PlaceholderConfig `mapstructure:"placeholders"`
	Redis        RedisConfig         `mapstructure:"redis"`
	OpenAI       OpenAIConfig        `mapstructure:"openai"`
	Twilio       TwilioConfig        `mapstructure:"twilio"`
	Telegram     TelegramConfig      `mapstructure:"telegram"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Chirper.Transport == "" {
		c.Chirper.Transport = "twilio"
	}
	c.Chirper.Transport = strings.ToLower(strings.TrimSpace(c.Chirper.Transport))
	if c.Chirper.CatchUpToday == nil {
		v := true
		c.Chirper.CatchUpToday = &v
	}
	if c.Chirper.SendTimeout == "" {
		c.Chirper.SendTimeout = "20s"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Templates.Source == "" && len(c.Templates.Items) == 0 {
		c.Templates.Source = "templates.txt"
	}
}

// SendTimeout parses chirper.send_timeout.
func (c Config) SendTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Chirper.SendTimeout)
	if err != nil {
		return 0, fmt.Errorf("chirper.send_timeout %q: %w", c.Chirper.SendTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("chirper.send_timeout %q must be positive", c.Chirper.SendTimeout)
	}
	return d, nil
}

// CatchUp reports the effective catch_up_today setting.
func (c Config) CatchUp() bool {
	return c.Chirper.CatchUpToday == nil || *c.Chirper.CatchUpToday
}

// ValidateTemplates checks what rendering needs: unique, non-empty keys at
// every nesting level.
func (c Config) ValidateTemplates() error {
	return validatePlaceholders("", c.Placeholders)
}

// Validate checks everything the daily loop needs before it starts.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Chirper.Recipient) == "" {
		errs = append(errs, errors.New("chirper.recipient is empty"))
	}
	switch c.Chirper.Transport {
	case "twilio", "telegram", "stdout":
	default:
		errs = append(errs, fmt.Errorf("chirper.transport %q is not one of twilio, telegram, stdout", c.Chirper.Transport))
	}
	if _, err := c.SendTimeout(); err != nil {
		errs = append(errs, err)
	}
	if err := schedule.ValidateRange(c.Chirper.EarliestHour, c.Chirper.LatestHour); err != nil {
		errs = append(errs, err)
	}
	if err := c.ValidateTemplates(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func validatePlaceholders(parent string, ps []PlaceholderConfig) error {
	seen := map[string]struct{}{}
	for i, p := range ps {
		if p.Key == "" {
			return fmt.Errorf("placeholders%s[%d]: empty key", parent, i)
		}
		if _, ok := seen[p.Key]; ok {
			return fmt.Errorf("placeholders%s: duplicate key %s", parent, p.Key)
		}
		seen[p.Key] = struct{}{}
		if err := validatePlaceholders(parent+"."+p.Key, p.Placeholders); err != nil {
			return err
		}
	}
	return nil
}
