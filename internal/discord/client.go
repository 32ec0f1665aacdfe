// Package discord is a thin client over the Discord REST API. The service
// uses fixed channels as its only persistent store: records are JSON blobs
// posted as ordinary messages and read back through the message list. There
// is no compare-and-swap or uniqueness constraint in this store; writes are
// single-attempt appends and that limitation is part of the contract.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/chanboard-dev/chanboard/backend/internal/common/constants"
	commonerrors "github.com/chanboard-dev/chanboard/backend/internal/common/errors"
	"github.com/chanboard-dev/chanboard/backend/internal/common/logger"
	"github.com/chanboard-dev/chanboard/backend/internal/observability/metrics"
)

const DefaultBaseURL = "https://discord.com/api/v10"

// Message is a channel message as returned by the API, newest first.
type Message struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

type ClientConfig struct {
	Token   string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	token   string
	baseURL string
	httpc   *http.Client
	log     *logger.Logger
}

func NewClient(cfg ClientConfig, log *logger.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		token:   cfg.Token,
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

// ListMessages fetches up to limit messages from a channel in the API's
// native newest-first order. The API caps a single page at 100.
func (c *Client) ListMessages(ctx context.Context, channelID string, limit int) ([]Message, error) {
	if c.token == "" {
		c.log.Error("discord bot token is not configured")
		return nil, commonerrors.ErrStoreNotConfigured
	}

	if limit <= 0 {
		limit = constants.MessagesPerPage
	}
	if limit > constants.DiscordMaxFetchLimit {
		limit = constants.DiscordMaxFetchLimit
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s/channels/%s/messages", c.baseURL, channelID),
		nil,
	)
	if err != nil {
		return nil, commonerrors.ErrStoreUnavailable.WithCause(err)
	}

	q := req.URL.Query()
	q.Set("limit", strconv.Itoa(limit))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bot "+c.token)

	start := time.Now()
	resp, err := c.httpc.Do(req)
	metrics.StoreRequestDurationSeconds.WithLabelValues("list").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StoreRequestsTotal.WithLabelValues("list", "error").Inc()
		c.log.WithFields(ctx, logger.Fields{
			"channel_id": channelID,
			"action":     "store_list_failed",
		}).Errorf("failed to fetch channel messages: %v", err)
		return nil, commonerrors.ErrStoreUnavailable.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.StoreRequestsTotal.WithLabelValues("list", "error").Inc()
		c.log.WithFields(ctx, logger.Fields{
			"channel_id": channelID,
			"status":     resp.StatusCode,
			"action":     "store_list_failed",
		}).Error("channel message list rejected")
		return nil, commonerrors.ErrStoreUnavailable.WithCause(
			fmt.Errorf("discord api responded with status %d", resp.StatusCode))
	}

	var messages []Message
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		metrics.StoreRequestsTotal.WithLabelValues("list", "error").Inc()
		return nil, commonerrors.ErrStoreUnavailable.WithCause(err)
	}

	metrics.StoreRequestsTotal.WithLabelValues("list", "ok").Inc()
	return messages, nil
}

// PostMessage appends content as a new channel message. Single attempt, no
// retry: a failure surfaces to the caller.
func (c *Client) PostMessage(ctx context.Context, channelID, content string) error {
	if c.token == "" {
		c.log.Error("discord bot token is not configured")
		return commonerrors.ErrStoreNotConfigured
	}

	body, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return commonerrors.ErrStoreUnavailable.WithCause(err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		fmt.Sprintf("%s/channels/%s/messages", c.baseURL, channelID),
		bytes.NewReader(body),
	)
	if err != nil {
		return commonerrors.ErrStoreUnavailable.WithCause(err)
	}

	req.Header.Set("Authorization", "Bot "+c.token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	metrics.StoreRequestDurationSeconds.WithLabelValues("post").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StoreRequestsTotal.WithLabelValues("post", "error").Inc()
		c.log.WithFields(ctx, logger.Fields{
			"channel_id": channelID,
			"action":     "store_post_failed",
		}).Errorf("failed to post channel message: %v", err)
		return commonerrors.ErrStoreUnavailable.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.StoreRequestsTotal.WithLabelValues("post", "error").Inc()
		c.log.WithFields(ctx, logger.Fields{
			"channel_id": channelID,
			"status":     resp.StatusCode,
			"action":     "store_post_failed",
		}).Error("channel message post rejected")
		return commonerrors.ErrStoreUnavailable.WithCause(
			fmt.Errorf("discord api responded with status %d", resp.StatusCode))
	}

	metrics.StoreRequestsTotal.WithLabelValues("post", "ok").Inc()
	return nil
}
