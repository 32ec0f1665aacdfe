package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/chanboard-dev/chanboard/backend/internal/account/service"
	commonhttp "github.com/chanboard-dev/chanboard/backend/internal/common/http"
	"github.com/chanboard-dev/chanboard/backend/internal/common/logger"
)

type AuthService interface {
	LoginOrRegister(ctx context.Context, username, password string) (service.Result, error)
}

type accountRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type accountResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type Handler struct {
	auth     AuthService
	validate *validator.Validate
	timeout  time.Duration
	log      *logger.Logger
}

func NewHandler(auth AuthService, timeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{
		auth:     auth,
		validate: validator.New(),
		timeout:  timeout,
		log:      log,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/account", h.account)
}

func (h *Handler) account(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req accountRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("account request failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		commonhttp.WriteError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.auth.LoginOrRegister(ctx, req.Username, req.Password)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	message := "Login successful"
	if result.Status == service.StatusRegistered {
		message = "Account created successfully"
	}

	commonhttp.WriteJSON(w, http.StatusOK, accountResponse{
		Message: message,
		Token:   result.Token,
	})
}
