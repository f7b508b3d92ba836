package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
)

type stubFederated struct {
	token string
	user  *domain.User
	err   error
}

func (s *stubFederated) AuthURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (s *stubFederated) HandleCallback(_ context.Context, _ string) (string, *domain.User, error) {
	return s.token, s.user, s.err
}

func TestGoogleHandler_Begin(t *testing.T) {
	h := NewGoogleHandler(&stubFederated{}, "http://frontend")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/google-login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Begin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}

	var state string
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == stateCookieName {
			state = cookie.Value
		}
	}
	if state == "" {
		t.Fatalf("expected a state cookie")
	}
	location := rec.Header().Get(echo.HeaderLocation)
	if !strings.Contains(location, "state="+state) {
		t.Fatalf("redirect %q does not carry the state cookie value", location)
	}
}

func TestGoogleHandler_Callback_Success(t *testing.T) {
	h := NewGoogleHandler(&stubFederated{token: "token123", user: &domain.User{ID: "u1"}}, "http://frontend")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/google-login/callback?code=abc&state=xyz", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "xyz"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Callback(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != "http://frontend/google-auth-success?token=token123" {
		t.Fatalf("unexpected redirect: %q", got)
	}
}

func TestGoogleHandler_Callback_StateMismatch(t *testing.T) {
	h := NewGoogleHandler(&stubFederated{token: "token123"}, "http://frontend")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/google-login/callback?code=abc&state=tampered", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "xyz"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Callback(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != "http://frontend/login?error=google_auth_failed" {
		t.Fatalf("unexpected redirect: %q", got)
	}
}

func TestGoogleHandler_Callback_ProviderFailure(t *testing.T) {
	h := NewGoogleHandler(&stubFederated{err: domain.ErrProviderFailure}, "http://frontend")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/google-login/callback?code=abc&state=xyz", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "xyz"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Callback(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != "http://frontend/login?error=google_auth_failed" {
		t.Fatalf("unexpected redirect: %q", got)
	}
}
