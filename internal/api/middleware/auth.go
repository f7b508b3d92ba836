package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
	"github.com/beatbridge/beatbridge-api/internal/core/ports"
)

// TokenVerifier abstracts the bearer-token verifier (JWT service).
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Auth is the authentication gate: it extracts the bearer token, verifies
// it, resolves the account, optionally enforces the verified flag, and
// injects the account into the request context. The verified requirement is
// an explicit capability parameter so every protected route reuses the same
// middleware.
func Auth(tokens TokenVerifier, users ports.UserRepository, requireVerified bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			userID, err := tokens.Verify(parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusNotFound, "account not found")
				}
				return err
			}

			if requireVerified && !user.IsVerified {
				return echo.NewHTTPError(http.StatusForbidden, "verification required")
			}

			c.Set("user_id", user.ID)
			c.Set("user", user)

			return next(c)
		}
	}
}
