package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	commonerrors "github.com/chanboard-dev/chanboard/backend/internal/common/errors"
	"github.com/chanboard-dev/chanboard/backend/internal/common/logger"
)

// RelayPayload is the outbound message shape. Name always carries the
// verified account username, never a client-supplied value.
type RelayPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

type WebhookConfig struct {
	URL     string
	Timeout time.Duration
}

// WebhookClient delivers relay payloads to the outbound notification webhook.
type WebhookClient struct {
	url   string
	httpc *http.Client
	log   *logger.Logger
}

func NewWebhookClient(cfg WebhookConfig, log *logger.Logger) *WebhookClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookClient{
		url:   cfg.URL,
		httpc: &http.Client{Timeout: timeout},
		log:   log,
	}
}

// Send posts the payload as the webhook message content. Single attempt.
func (c *WebhookClient) Send(ctx context.Context, payload RelayPayload) error {
	if c.url == "" {
		c.log.Error("discord webhook URL is not configured")
		return commonerrors.ErrSinkNotConfigured
	}

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return commonerrors.ErrSinkUnavailable.WithCause(err)
	}

	body, err := json.Marshal(map[string]string{"content": "\n" + string(encoded) + "\n"})
	if err != nil {
		return commonerrors.ErrSinkUnavailable.WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return commonerrors.ErrSinkUnavailable.WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.WithFields(ctx, logger.Fields{
			"action": "webhook_send_failed",
		}).Errorf("failed to send webhook: %v", err)
		return commonerrors.ErrSinkUnavailable.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.WithFields(ctx, logger.Fields{
			"status": resp.StatusCode,
			"action": "webhook_send_failed",
		}).Error("webhook rejected relay payload")
		return commonerrors.ErrSinkUnavailable.WithCause(
			fmt.Errorf("webhook responded with status %d", resp.StatusCode))
	}

	return nil
}
