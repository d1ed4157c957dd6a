package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	"github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioCredentials are read from the environment at startup.
type TwilioCredentials struct {
	AccountSID string
	AuthToken  string
	ServiceSID string
}

// Twilio sends SMS through a Twilio messaging service.
type Twilio struct {
	rest  *twilio.RestClient
	creds TwilioCredentials
}

// NewTwilio creates a Twilio client. A non-empty baseURL redirects every
// API request to that host, e.g. a local stub.
func NewTwilio(baseURL string, creds TwilioCredentials, timeout time.Duration) (*Twilio, error) {
	if creds.AccountSID == "" || creds.AuthToken == "" || creds.ServiceSID == "" {
		return nil, fmt.Errorf("%w: twilio account sid, auth token and service sid are required", ErrMissingCredential)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	hc := &http.Client{Timeout: timeout}
	if strings.TrimSpace(baseURL) != "" {
		u, err := url.Parse(strings.TrimRight(baseURL, "/"))
		if err != nil {
			return nil, fmt.Errorf("invalid twilio base url: %w", err)
		}
		hc.Transport = &hostRewriter{target: u, next: http.DefaultTransport}
	}
	cl := &client.Client{
		Credentials: client.NewCredentials(creds.AccountSID, creds.AuthToken),
		HTTPClient:  hc,
	}
	cl.SetAccountSid(creds.AccountSID)
	return &Twilio{
		rest:  twilio.NewRestClientWithParams(twilio.ClientParams{Client: cl}),
		creds: creds,
	}, nil
}

// Send creates a message resource. Acceptance by Twilio is reported as
// success; later delivery status is not tracked.
func (t *Twilio) Send(ctx context.Context, recipient, message string) error {
	if t == nil {
		return errors.New("nil twilio client")
	}
	if strings.TrimSpace(message) == "" {
		return ErrEmptyMessage
	}
	if strings.TrimSpace(recipient) == "" {
		return errors.New("empty recipient")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	params := &openapi.CreateMessageParams{}
	params.SetPathAccountSid(t.creds.AccountSID)
	params.SetMessagingServiceSid(t.creds.ServiceSID)
	params.SetTo(recipient)
	params.SetBody(message)

	msg, err := t.rest.Api.CreateMessage(params)
	if err != nil {
		var rest *client.TwilioRestError
		if errors.As(err, &rest) {
			return fmt.Errorf("twilio send failed: status=%d code=%d message=%s", rest.Status, rest.Code, rest.Message)
		}
		return fmt.Errorf("twilio send failed: %w", err)
	}
	if msg != nil && msg.ErrorCode != nil {
		text := ""
		if msg.ErrorMessage != nil {
			text = *msg.ErrorMessage
		}
		return fmt.Errorf("twilio send failed: code=%d message=%s", *msg.ErrorCode, text)
	}
	return nil
}

// hostRewriter sends requests to target's scheme and host, keeping the path.
type hostRewriter struct {
	target *url.URL
	next   http.RoundTripper
}

func (h *hostRewriter) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.URL.Scheme = h.target.Scheme
	r.URL.Host = h.target.Host
	r.URL.Path = h.target.Path + req.URL.Path
	r.Host = h.target.Host
	return h.next.RoundTrip(r)
}
