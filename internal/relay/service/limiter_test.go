package service

import (
	"testing"
	"time"

	"github.com/chanboard-dev/chanboard/backend/internal/common/clock"
)

func TestCooldownLimiter_FirstRequestAllowed(t *testing.T) {
	mockClock := clock.NewMockClock(time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC))
	limiter := NewCooldownLimiter(mockClock, 5*time.Second)

	if !limiter.Allow() {
		t.Fatal("expected first request to be allowed")
	}
}

func TestCooldownLimiter_RejectsWithinCooldown(t *testing.T) {
	mockClock := clock.NewMockClock(time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC))
	limiter := NewCooldownLimiter(mockClock, 5*time.Second)

	if !limiter.Allow() {
		t.Fatal("expected first request to be allowed")
	}

	mockClock.Advance(4999 * time.Millisecond)
	if limiter.Allow() {
		t.Error("expected request within cooldown to be rejected")
	}
}

func TestCooldownLimiter_AllowsAtCooldownBoundary(t *testing.T) {
	mockClock := clock.NewMockClock(time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC))
	limiter := NewCooldownLimiter(mockClock, 5*time.Second)

	if !limiter.Allow() {
		t.Fatal("expected first request to be allowed")
	}

	mockClock.Advance(5 * time.Second)
	if !limiter.Allow() {
		t.Error("expected request at exactly the cooldown to be allowed")
	}
}

func TestCooldownLimiter_RejectionDoesNotRestartCooldown(t *testing.T) {
	mockClock := clock.NewMockClock(time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC))
	limiter := NewCooldownLimiter(mockClock, 5*time.Second)

	if !limiter.Allow() {
		t.Fatal("expected first request to be allowed")
	}

	mockClock.Advance(3 * time.Second)
	if limiter.Allow() {
		t.Fatal("expected request within cooldown to be rejected")
	}

	// 5s after the accepted request, 2s after the rejected one. If the
	// rejection had stamped the clock this would still be cooling.
	mockClock.Advance(2 * time.Second)
	if !limiter.Allow() {
		t.Error("expected rejection to leave the cooldown window untouched")
	}
}
