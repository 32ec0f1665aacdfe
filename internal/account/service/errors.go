package service

import (
	"net/http"

	commonerrors "github.com/chanboard-dev/chanboard/backend/internal/common/errors"
)

var (
	ErrMissingCredentials = commonerrors.NewDomainError(
		"MISSING_CREDENTIALS",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"username and password are required",
	)

	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid credentials",
	)

	ErrInvalidToken = commonerrors.NewDomainError(
		"INVALID_TOKEN",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid token",
	)
)
