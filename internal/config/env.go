package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Credentials are secrets that never live in config.yaml.
type Credentials struct {
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioServiceSID string
	TelegramToken    string
	OpenAIAPIKey     string
}

// LoadDotEnv loads variables from the given files (default ".env") without
// overriding ones already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		slog.Debug("config: loaded env file", "file", f)
	}
	return nil
}

// CredentialsFromEnv reads credentials from the process environment.
func CredentialsFromEnv() Credentials {
	get := func(k string) string { return strings.TrimSpace(os.Getenv(k)) }
	return Credentials{
		TwilioAccountSID: get("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  get("TWILIO_AUTH_TOKEN"),
		TwilioServiceSID: get("TWILIO_SERVICE_SID"),
		TelegramToken:    get("TELEGRAM_BOT_TOKEN"),
		OpenAIAPIKey:     get("OPENAI_API_KEY"),
	}
}
