package service

import (
	"net/http"

	commonerrors "github.com/chanboard-dev/chanboard/backend/internal/common/errors"
)

var (
	ErrRateLimited = commonerrors.NewDomainError(
		"RATE_LIMITED",
		commonerrors.CategoryRateLimit,
		http.StatusTooManyRequests,
		"too many requests",
	)

	ErrTokenRequired = commonerrors.NewDomainError(
		"TOKEN_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"token is required",
	)

	ErrMessageInvalid = commonerrors.NewDomainError(
		"INVALID_MESSAGE",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"message is required and cannot exceed 1000 characters",
	)
)
