package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCategory string

const (
	CategoryValidation   ErrorCategory = "VALIDATION"
	CategoryUnauthorized ErrorCategory = "UNAUTHORIZED"
	CategoryRateLimit    ErrorCategory = "RATE_LIMIT"
	CategoryInternal     ErrorCategory = "INTERNAL"
	CategoryExternal     ErrorCategory = "EXTERNAL"
)

type DomainError interface {
	error
	Code() string
	Category() ErrorCategory
	HTTPStatus() int
	Message() string
	Unwrap() error
	WithCause(cause error) DomainError
}

type domainError struct {
	code     string
	category ErrorCategory
	status   int
	message  string
	cause    error
}

func (e *domainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *domainError) Code() string            { return e.code }
func (e *domainError) Category() ErrorCategory { return e.category }
func (e *domainError) HTTPStatus() int         { return e.status }
func (e *domainError) Message() string         { return e.message }
func (e *domainError) Unwrap() error           { return e.cause }

func (e *domainError) WithCause(cause error) DomainError {
	return &domainError{
		code:     e.code,
		category: e.category,
		status:   e.status,
		message:  e.message,
		cause:    cause,
	}
}

func (e *domainError) Is(target error) bool {
	de, ok := target.(*domainError)
	return ok && de.code == e.code
}

func NewDomainError(code string, category ErrorCategory, status int, message string) DomainError {
	return &domainError{
		code:     code,
		category: category,
		status:   status,
		message:  message,
	}
}

func IsDomainError(err error) bool {
	var de DomainError
	return errors.As(err, &de)
}

func AsDomainError(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Shared errors for the channel-backed store and the outbound sink. Endpoint
// specific errors live next to the services that raise them.
var (
	ErrStoreUnavailable = NewDomainError(
		"STORE_UNAVAILABLE",
		CategoryExternal,
		http.StatusInternalServerError,
		"failed to process request",
	)

	ErrStoreNotConfigured = NewDomainError(
		"STORE_NOT_CONFIGURED",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)

	ErrSinkUnavailable = NewDomainError(
		"RELAY_UNAVAILABLE",
		CategoryExternal,
		http.StatusInternalServerError,
		"failed to send message",
	)

	ErrSinkNotConfigured = NewDomainError(
		"SINK_NOT_CONFIGURED",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)

	ErrInternalError = NewDomainError(
		"INTERNAL_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)
)
