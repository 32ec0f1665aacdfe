package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	accountservice "github.com/chanboard-dev/chanboard/backend/internal/account/service"
	"github.com/chanboard-dev/chanboard/backend/internal/common/clock"
	"github.com/chanboard-dev/chanboard/backend/internal/common/constants"
	commonerrors "github.com/chanboard-dev/chanboard/backend/internal/common/errors"
	"github.com/chanboard-dev/chanboard/backend/internal/common/logger"
	"github.com/chanboard-dev/chanboard/backend/internal/discord"
)

type mockVerifier struct {
	verifyTokenFunc func(ctx context.Context, token string) (string, error)
}

func (m *mockVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	if m.verifyTokenFunc != nil {
		return m.verifyTokenFunc(ctx, token)
	}
	return "alice", nil
}

type mockSink struct {
	sendFunc func(ctx context.Context, payload discord.RelayPayload) error
	sent     []discord.RelayPayload
}

func (m *mockSink) Send(ctx context.Context, payload discord.RelayPayload) error {
	m.sent = append(m.sent, payload)
	if m.sendFunc != nil {
		return m.sendFunc(ctx, payload)
	}
	return nil
}

type allowAll struct{}

func (allowAll) Allow() bool { return true }

func setupRelay(t *testing.T) (*Service, *mockVerifier, *mockSink, *clock.MockClock) {
	t.Helper()
	verifier := &mockVerifier{}
	sink := &mockSink{}
	mockClock := clock.NewMockClock(time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC))
	svc := NewService(verifier, sink, allowAll{}, mockClock, constants.MaxMessageLength, logger.NewNop())
	return svc, verifier, sink, mockClock
}

func TestRelay_Success(t *testing.T) {
	svc, verifier, sink, mockClock := setupRelay(t)

	verifier.verifyTokenFunc = func(ctx context.Context, token string) (string, error) {
		if token != "tok-1" {
			t.Errorf("expected token tok-1, got %s", token)
		}
		return "alice", nil
	}

	timestamp, err := svc.Relay(context.Background(), "tok-1", "hello board")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !timestamp.Equal(mockClock.Now()) {
		t.Errorf("expected timestamp %v, got %v", mockClock.Now(), timestamp)
	}

	if len(sink.sent) != 1 {
		t.Fatalf("expected one delivery, got %d", len(sink.sent))
	}

	payload := sink.sent[0]
	if payload.Name != "alice" {
		t.Errorf("expected payload name from token verification, got %q", payload.Name)
	}
	if payload.Description != "hello board" {
		t.Errorf("unexpected payload description %q", payload.Description)
	}
	if payload.Timestamp != mockClock.Now().Format(time.RFC3339) {
		t.Errorf("unexpected payload timestamp %q", payload.Timestamp)
	}
}

func TestRelay_MessageLengthBoundary(t *testing.T) {
	svc, _, sink, _ := setupRelay(t)

	if _, err := svc.Relay(context.Background(), "tok-1", strings.Repeat("a", 1000)); err != nil {
		t.Fatalf("expected 1000-char message to be accepted, got %v", err)
	}

	if _, err := svc.Relay(context.Background(), "tok-1", strings.Repeat("a", 1001)); !errors.Is(err, ErrMessageInvalid) {
		t.Fatalf("expected ErrMessageInvalid for 1001-char message, got %v", err)
	}

	if len(sink.sent) != 1 {
		t.Errorf("expected only the valid message to be delivered, got %d", len(sink.sent))
	}
}

func TestRelay_EmptyMessage(t *testing.T) {
	svc, _, _, _ := setupRelay(t)

	if _, err := svc.Relay(context.Background(), "tok-1", ""); !errors.Is(err, ErrMessageInvalid) {
		t.Fatalf("expected ErrMessageInvalid, got %v", err)
	}
}

func TestRelay_MissingToken(t *testing.T) {
	svc, _, _, _ := setupRelay(t)

	if _, err := svc.Relay(context.Background(), "", "hello"); !errors.Is(err, ErrTokenRequired) {
		t.Fatalf("expected ErrTokenRequired, got %v", err)
	}
}

func TestRelay_InvalidToken(t *testing.T) {
	svc, verifier, sink, _ := setupRelay(t)

	verifier.verifyTokenFunc = func(ctx context.Context, token string) (string, error) {
		return "", accountservice.ErrInvalidToken
	}

	if _, err := svc.Relay(context.Background(), "bad", "hello"); !errors.Is(err, accountservice.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	if len(sink.sent) != 0 {
		t.Error("expected no delivery for an invalid token")
	}
}

func TestRelay_SinkFailure(t *testing.T) {
	svc, _, sink, _ := setupRelay(t)

	sink.sendFunc = func(ctx context.Context, payload discord.RelayPayload) error {
		return commonerrors.ErrSinkUnavailable
	}

	if _, err := svc.Relay(context.Background(), "tok-1", "hello"); !errors.Is(err, commonerrors.ErrSinkUnavailable) {
		t.Fatalf("expected ErrSinkUnavailable, got %v", err)
	}
}

func TestRelay_CooldownGate(t *testing.T) {
	verifier := &mockVerifier{}
	sink := &mockSink{}
	mockClock := clock.NewMockClock(time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC))
	limiter := NewCooldownLimiter(mockClock, 5*time.Second)
	svc := NewService(verifier, sink, limiter, mockClock, constants.MaxMessageLength, logger.NewNop())

	if _, err := svc.Relay(context.Background(), "tok-1", "first"); err != nil {
		t.Fatalf("expected first relay to succeed, got %v", err)
	}

	mockClock.Advance(time.Second)
	if _, err := svc.Relay(context.Background(), "tok-1", "second"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited within cooldown, got %v", err)
	}

	mockClock.Advance(4 * time.Second)
	if _, err := svc.Relay(context.Background(), "tok-1", "third"); err != nil {
		t.Fatalf("expected relay after cooldown to succeed, got %v", err)
	}

	if len(sink.sent) != 2 {
		t.Errorf("expected two deliveries, got %d", len(sink.sent))
	}
}
