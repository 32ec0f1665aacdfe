package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chanboard-dev/chanboard/backend/internal/common/constants"
)

func TestTraceIDMiddleware(t *testing.T) {
	var ctxTraceID string
	handler := TraceIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxTraceID, _ = r.Context().Value(constants.TraceIDKey).(string)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	headerID := rec.Header().Get("X-Trace-ID")
	if headerID == "" {
		t.Fatal("expected a generated trace ID header")
	}
	if ctxTraceID != headerID {
		t.Errorf("expected context trace ID %q to match header %q", ctxTraceID, headerID)
	}
}

func TestTraceIDMiddleware_PropagatesInbound(t *testing.T) {
	handler := TraceIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", "trace-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Trace-ID"); got != "trace-123" {
		t.Errorf("expected inbound trace ID to be kept, got %q", got)
	}
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	defer rl.Stop()

	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/chat-log", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("expected burst requests to pass, got %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("expected third request to be blocked, got %v", statuses)
	}
}

func TestRateLimiter_HealthBypassed(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	defer rl.Stop()

	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected /health to bypass the limiter, got %d", rec.Code)
		}
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	defer rl.Stop()

	if !rl.Allow("10.0.0.1") {
		t.Fatal("expected first request from first client to pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("expected second request from first client to be blocked")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("expected a different client to have its own budget")
	}
}
