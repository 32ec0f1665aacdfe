package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/chanboard-dev/chanboard/backend/internal/board/service"
	commonhttp "github.com/chanboard-dev/chanboard/backend/internal/common/http"
	"github.com/chanboard-dev/chanboard/backend/internal/common/logger"
)

type BoardService interface {
	Page(ctx context.Context, page int) (service.Page, error)
}

type Handler struct {
	board   BoardService
	timeout time.Duration
	log     *logger.Logger
}

func NewHandler(board BoardService, timeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{
		board:   board,
		timeout: timeout,
		log:     log,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/chat-log", h.chatLog)
}

func (h *Handler) chatLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.board.Page(ctx, page)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, result)
}
