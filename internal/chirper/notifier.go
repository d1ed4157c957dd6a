package chirper

import (
	"fmt"
	"io"

	"chirper/internal/config"
	"chirper/internal/notify"
)

// NewNotifier picks the transport named by chirper.transport. Missing
// credentials are an error so the daemon never starts without them.
func NewNotifier(cfg config.Config, creds config.Credentials, stdout io.Writer) (notify.Notifier, error) {
	switch cfg.Chirper.Transport {
	case "twilio":
		timeout, err := cfg.SendTimeout()
		if err != nil {
			return nil, err
		}
		tw, err := notify.NewTwilio(cfg.Twilio.BaseURL, notify.TwilioCredentials{
			AccountSID: creds.TwilioAccountSID,
			AuthToken:  creds.TwilioAuthToken,
			ServiceSID: creds.TwilioServiceSID,
		}, timeout)
		if err != nil {
			return nil, err
		}
		return tw, nil
	case "telegram":
		tg, err := notify.NewTelegram(creds.TelegramToken, cfg.Telegram.APIURL)
		if err != nil {
			return nil, err
		}
		return tg, nil
	case "stdout":
		return notify.NewWriter(stdout), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Chirper.Transport)
	}
}
