package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
)

// ctxUserID extracts the account id injected by the Auth middleware.
// Presence proves the middleware ran; a protected route reached without it
// is a wiring bug surfaced as 401, not a panic.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// ctxUser extracts the resolved account, when a handler needs more than
// the id.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
