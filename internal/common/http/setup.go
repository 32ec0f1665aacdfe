package http

import (
	"net/http"

	"github.com/chanboard-dev/chanboard/backend/internal/common/constants"
	"github.com/chanboard-dev/chanboard/backend/internal/common/httpmetrics"
	"github.com/chanboard-dev/chanboard/backend/internal/common/logger"
)

// BuildBaseHandler wires the ambient middleware around the API mux.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return SecurityHeadersMiddleware(recovery(TraceIDMiddleware(maxRequestSize(httpmetrics.Wrap(handler)))))
}
