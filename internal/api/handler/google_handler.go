package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/beatbridge/beatbridge-api/internal/core/ports"
)

const stateCookieName = "oauth_state"

type GoogleHandler struct {
	federated   ports.FederatedService
	frontendURL string
}

func NewGoogleHandler(federated ports.FederatedService, frontendURL string) *GoogleHandler {
	return &GoogleHandler{federated: federated, frontendURL: frontendURL}
}

// Begin redirects the browser to Google's consent screen.
//
// @Summary      Start Google sign-in
// @Tags         auth
// @Success      302
// @Router       /api/google-login [get]
func (h *GoogleHandler) Begin(c echo.Context) error {
	state := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int(10 * time.Minute / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, h.federated.AuthURL(state))
}

// Callback finishes the flow. The browser always ends up back on the
// frontend, with a token on success or an error flag otherwise.
//
// @Summary      Google sign-in callback
// @Tags         auth
// @Success      302
// @Router       /api/google-login/callback [get]
func (h *GoogleHandler) Callback(c echo.Context) error {
	if !h.stateMatches(c) {
		return c.Redirect(http.StatusFound, h.failureURL())
	}
	token, _, err := h.federated.HandleCallback(c.Request().Context(), c.QueryParam("code"))
	if err != nil {
		return c.Redirect(http.StatusFound, h.failureURL())
	}
	return c.Redirect(http.StatusFound, h.frontendURL+"/google-auth-success?token="+url.QueryEscape(token))
}

func (h *GoogleHandler) stateMatches(c echo.Context) bool {
	cookie, err := c.Cookie(stateCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	return cookie.Value == c.QueryParam("state")
}

func (h *GoogleHandler) failureURL() string {
	return h.frontendURL + "/login?error=google_auth_failed"
}
