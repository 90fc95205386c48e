// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deliver posts digest text to a Slack incoming webhook.
package deliver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pdiddy/paper-digest/internal/httputil"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// ErrNoWebhook is returned when no webhook URL is configured.
var ErrNoWebhook = eris.New("deliver: slack webhook URL is not configured")

const testMessage = `:test_tube: *Paper digest test*

The digest is up and running.
The latest AI research will arrive every weekday.

_This is a test message._`

// Slack posts messages through an incoming webhook.
type Slack struct {
	WebhookURL string
	Channel    string
	Client     *http.Client

	// Now stamps error notifications. Defaults to time.Now.
	Now func() time.Time
}

// NewSlack returns a Slack deliverer for cfg.
func NewSlack(cfg types.DeliveryConfig) *Slack {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Slack{
		WebhookURL: cfg.WebhookURL,
		Channel:    cfg.Channel,
		Client:     &http.Client{Timeout: timeout},
	}
}

type payload struct {
	Text    string `json:"text"`
	Mrkdwn  bool   `json:"mrkdwn"`
	Channel string `json:"channel,omitempty"`
}

// Send posts text. A nil error means Slack accepted the message.
func (s *Slack) Send(ctx context.Context, text string) error {
	if s.WebhookURL == "" {
		return ErrNoWebhook
	}

	body, err := json.Marshal(payload{Text: text, Mrkdwn: true, Channel: s.Channel})
	if err != nil {
		return eris.Wrap(err, "deliver: marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "deliver: create request")
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return eris.Wrap(err, "deliver: post to slack")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return eris.Errorf("deliver: slack returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	zap.L().Info("deliver: slack message sent", zap.Int("bytes", len(text)))
	return nil
}

// SendError posts an error notification stamped with the current time.
func (s *Slack) SendError(ctx context.Context, message string) error {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return s.Send(ctx, ErrorText(message, now()))
}

// SendTest posts a fixed test message.
func (s *Slack) SendTest(ctx context.Context) error {
	return s.Send(ctx, testMessage)
}

// ErrorText formats an error notification.
func ErrorText(message string, at time.Time) string {
	return fmt.Sprintf(":rotating_light: *Paper digest error*\n\n*Time:* %s\n*Error:* %s\n\nPlease ask the maintainer to take a look.",
		at.Format("2006-01-02 15:04:05"), message)
}
