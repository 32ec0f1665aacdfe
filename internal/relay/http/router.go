package http

import (
	"context"
	"net/http"
	"time"

	commonhttp "github.com/chanboard-dev/chanboard/backend/internal/common/http"
	"github.com/chanboard-dev/chanboard/backend/internal/common/logger"
)

type RelayService interface {
	Relay(ctx context.Context, token, message string) (time.Time, error)
}

type relayRequest struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type relayResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type Handler struct {
	relay   RelayService
	timeout time.Duration
	log     *logger.Logger
}

func NewHandler(relay RelayService, timeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{
		relay:   relay,
		timeout: timeout,
		log:     log,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/webhook", h.webhook)
}

// Input validation is deliberately left to the relay service: the cooldown
// gate has to fire before anything else is inspected.
func (h *Handler) webhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req relayRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("webhook request failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	timestamp, err := h.relay.Relay(ctx, req.Token, req.Message)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, relayResponse{
		Message:   "Message sent successfully",
		Timestamp: timestamp.Format(time.RFC3339),
	})
}
