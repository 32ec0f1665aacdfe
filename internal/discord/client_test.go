package discord

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	commonerrors "github.com/chanboard-dev/chanboard/backend/internal/common/errors"
	"github.com/chanboard-dev/chanboard/backend/internal/common/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientConfig{Token: "bot-token", BaseURL: server.URL}, logger.NewNop())
}

func TestListMessages(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/channels/chan-1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bot bot-token" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "40" {
			t.Errorf("expected limit 40, got %q", got)
		}
		json.NewEncoder(w).Encode([]Message{
			{ID: "2", Content: "newer"},
			{ID: "1", Content: "older"},
		})
	})

	messages, err := client.ListMessages(context.Background(), "chan-1", 40)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].ID != "2" {
		t.Errorf("expected API order to be preserved, got %s first", messages[0].ID)
	}
}

func TestListMessages_ClampsLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "100" {
			t.Errorf("expected limit clamped to 100, got %q", got)
		}
		json.NewEncoder(w).Encode([]Message{})
	})

	if _, err := client.ListMessages(context.Background(), "chan-1", 500); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestListMessages_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.ListMessages(context.Background(), "chan-1", 20)
	if !errors.Is(err, commonerrors.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestListMessages_MissingToken(t *testing.T) {
	client := NewClient(ClientConfig{}, logger.NewNop())

	_, err := client.ListMessages(context.Background(), "chan-1", 20)
	if !errors.Is(err, commonerrors.ErrStoreNotConfigured) {
		t.Fatalf("expected ErrStoreNotConfigured, got %v", err)
	}
}

func TestPostMessage(t *testing.T) {
	var posted map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/channels/chan-1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected Content-Type %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&posted); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := client.PostMessage(context.Background(), "chan-1", `{"username":"alice"}`); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if posted["content"] != `{"username":"alice"}` {
		t.Errorf("unexpected posted content %q", posted["content"])
	}
}

func TestPostMessage_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	err := client.PostMessage(context.Background(), "chan-1", "content")
	if !errors.Is(err, commonerrors.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestPostMessage_MissingToken(t *testing.T) {
	client := NewClient(ClientConfig{}, logger.NewNop())

	err := client.PostMessage(context.Background(), "chan-1", "content")
	if !errors.Is(err, commonerrors.ErrStoreNotConfigured) {
		t.Fatalf("expected ErrStoreNotConfigured, got %v", err)
	}
}
