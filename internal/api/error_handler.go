package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ndavault/nda-vault/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps the
// domain error taxonomy (§4.12) to HTTP status codes exactly once, at the
// outer boundary. Unexpected errors are logged internally and never leak
// their real cause to the client.
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

	switch {
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrNotShared):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrProcessNotFound), errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrMalformed):
		return http.StatusBadRequest, "malformed request"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout, "operation timed out"
	case errors.Is(err, domain.ErrIntegration):
		return http.StatusBadGateway, "integration failure"
	case errors.Is(err, domain.ErrIntegrity):
		log.Error().Err(err).Str("path", c.Path()).Msg("integrity check failed")
		return http.StatusInternalServerError, "internal server error"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
