package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for single-message errors.
type errorResponse struct {
	Error string `json:"error"`
}

// fieldErrorResponse carries per-field messages for validation and conflict
// failures, so a client can surface every problem at once.
type fieldErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders validation and conflict errors field-by-field.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, fieldErrorResponse{Errors: ve.Fields})
			return
		}

		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			fields := make(map[string]string, len(conflict.Fields))
			for _, f := range conflict.Fields {
				fields[f] = f + " already exists"
			}
			_ = c.JSON(http.StatusConflict, fieldErrorResponse{Errors: fields})
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

	// Known domain errors map to deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrGoogleOnlyAccount),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrNotVerified):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTicketNotFound),
		errors.Is(err, domain.ErrJamNotFound),
		errors.Is(err, domain.ErrFavoriteNotFound),
		errors.Is(err, domain.ErrNoCustomization),
		errors.Is(err, domain.ErrNoTracksFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidOTP),
		errors.Is(err, domain.ErrOTPNotVerified),
		errors.Is(err, domain.ErrCodeNotFound):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrJamTitleTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrProviderFailure):
		return http.StatusBadGateway, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
