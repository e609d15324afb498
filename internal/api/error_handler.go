package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vasaworks/vasa-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	// Accounts and auth.
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrMembershipDowngrade):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"

	// Jobs and workers.
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound, "job not found"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrWorkerNotFound):
		return http.StatusNotFound, "worker profile not found"

	// Wallet.
	case errors.Is(err, domain.ErrPINNotSet):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrPINFormat):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidPIN):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrTooManyPINAttempts):
		return http.StatusTooManyRequests, err.Error()
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrInsufficientTokens):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrJobNotPayable):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrMissingTripDetails):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrRewardNotFound):
		return http.StatusNotFound, "reward not found"

	// Verification.
	case errors.Is(err, domain.ErrInvalidPAN):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidAadhaar):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotVerified):
		return http.StatusForbidden, err.Error()

	// Teams.
	case errors.Is(err, domain.ErrTeamNotFound):
		return http.StatusNotFound, "team not found"
	case errors.Is(err, domain.ErrAlreadyMember):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrNotMember):
		return http.StatusConflict, err.Error()

	// Learning.
	case errors.Is(err, domain.ErrModuleNotFound):
		return http.StatusNotFound, "learning module not found"
	case errors.Is(err, domain.ErrInvalidProgress):
		return http.StatusBadRequest, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
