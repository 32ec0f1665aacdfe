package service

import (
	"sync"
	"time"

	"github.com/chanboard-dev/chanboard/backend/internal/common/clock"
)

// CooldownLimiter is the single shared gate in front of the relay. One
// timestamp for the whole process, no per-client partitioning: an accepted
// request starts the cooldown for everyone. Excess requests are dropped,
// never queued.
type CooldownLimiter struct {
	mu          sync.Mutex
	clock       clock.Clock
	cooldown    time.Duration
	lastRequest time.Time
}

func NewCooldownLimiter(clk clock.Clock, cooldown time.Duration) *CooldownLimiter {
	return &CooldownLimiter{
		clock:    clk,
		cooldown: cooldown,
	}
}

// Allow reports whether a relay attempt may proceed. The cooldown check and
// the timestamp update happen under one lock; a rejected attempt does not
// touch the timestamp.
func (l *CooldownLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if !l.lastRequest.IsZero() && now.Sub(l.lastRequest) < l.cooldown {
		return false
	}
	l.lastRequest = now
	return true
}
