package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/chanboard-dev/chanboard/backend/internal/common/constants"
	commonerrors "github.com/chanboard-dev/chanboard/backend/internal/common/errors"
	"github.com/chanboard-dev/chanboard/backend/internal/common/logger"
	"github.com/chanboard-dev/chanboard/backend/internal/observability/metrics"
)

// HandleError translates any error coming out of a service into the JSON error
// body and status code of the public contract. Domain errors carry their own
// status; everything else is logged and answered with a generic 500.
func HandleError(w http.ResponseWriter, r *http.Request, err error, log *logger.Logger) {
	if err == nil {
		return
	}

	ctx := r.Context()
	traceID := TraceIDFromContext(ctx)

	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		handleDomainError(w, r, domainErr, traceID, log)
		return
	}

	logFields := logger.Fields{
		"error":  err.Error(),
		"action": "unhandled_error",
	}
	if traceID != "" {
		logFields["trace_id"] = traceID
		w.Header().Set(traceIDHeader, traceID)
	}

	log.WithFields(ctx, logFields).Errorf("unhandled error: %v", err)

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(http.StatusInternalServerError),
		r.URL.Path,
		r.Method,
	).Inc()

	WriteError(w, http.StatusInternalServerError, "internal server error")
}

func handleDomainError(w http.ResponseWriter, r *http.Request, err commonerrors.DomainError, traceID string, log *logger.Logger) {
	ctx := r.Context()
	status := err.HTTPStatus()

	logFields := logger.Fields{
		"error_code": err.Code(),
		"category":   string(err.Category()),
		"status":     status,
		"action":     "domain_error",
	}
	if traceID != "" {
		logFields["trace_id"] = traceID
		w.Header().Set(traceIDHeader, traceID)
	}

	if status >= http.StatusInternalServerError {
		log.WithFields(ctx, logFields).Errorf("domain error: %s", err.Error())
	} else if log.ShouldLog(logger.DEBUG) {
		log.WithFields(ctx, logFields).Debugf("domain error: %s", err.Error())
	}

	metrics.DomainErrorsTotal.WithLabelValues(
		string(err.Category()),
		err.Code(),
		strconv.Itoa(status),
	).Inc()

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(status),
		r.URL.Path,
		r.Method,
	).Inc()

	WriteError(w, status, err.Message())
}

func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, ok := ctx.Value(constants.TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}
