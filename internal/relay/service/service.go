package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/chanboard-dev/chanboard/backend/internal/common/clock"
	"github.com/chanboard-dev/chanboard/backend/internal/common/logger"
	"github.com/chanboard-dev/chanboard/backend/internal/discord"
	"github.com/chanboard-dev/chanboard/backend/internal/observability/metrics"
)

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

type Sink interface {
	Send(ctx context.Context, payload discord.RelayPayload) error
}

type Limiter interface {
	Allow() bool
}

// Service forwards authenticated user messages to the outbound webhook. The
// name on the outbound payload always comes from token verification, never
// from the request body.
type Service struct {
	verifier TokenVerifier
	sink     Sink
	limiter  Limiter
	clock    clock.Clock
	maxLen   int
	log      *logger.Logger
}

func NewService(
	verifier TokenVerifier,
	sink Sink,
	limiter Limiter,
	clk clock.Clock,
	maxLen int,
	log *logger.Logger,
) *Service {
	return &Service{
		verifier: verifier,
		sink:     sink,
		limiter:  limiter,
		clock:    clk,
		maxLen:   maxLen,
		log:      log,
	}
}

// Relay gates, validates, authenticates and delivers one message. The gate
// comes first so cooling requests are rejected before any store access.
func (s *Service) Relay(ctx context.Context, token, message string) (time.Time, error) {
	if !s.limiter.Allow() {
		metrics.RelayCooldownRejections.Inc()
		metrics.RelayRequestsTotal.WithLabelValues("rate_limited").Inc()
		return time.Time{}, ErrRateLimited
	}

	if token == "" {
		metrics.RelayRequestsTotal.WithLabelValues("invalid_input").Inc()
		return time.Time{}, ErrTokenRequired
	}

	if message == "" || utf8.RuneCountInString(message) > s.maxLen {
		metrics.RelayRequestsTotal.WithLabelValues("invalid_input").Inc()
		return time.Time{}, ErrMessageInvalid
	}

	username, err := s.verifier.VerifyToken(ctx, token)
	if err != nil {
		metrics.RelayRequestsTotal.WithLabelValues("unauthorized").Inc()
		return time.Time{}, err
	}

	timestamp := s.clock.Now().UTC()
	payload := discord.RelayPayload{
		Name:        username,
		Description: message,
		Timestamp:   timestamp.Format(time.RFC3339),
	}

	if err := s.sink.Send(ctx, payload); err != nil {
		metrics.RelayRequestsTotal.WithLabelValues("delivery_failed").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "relay_delivery_failed",
		}).Errorf("relay delivery failed: %v", err)
		return time.Time{}, err
	}

	metrics.RelayRequestsTotal.WithLabelValues("success").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   "relay_success",
	}).Info("message relayed")

	return timestamp, nil
}
