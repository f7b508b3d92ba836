package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
)

type stubVerifier struct {
	userID string
	err    error
}

func (v *stubVerifier) Verify(string) (string, error) {
	return v.userID, v.err
}

type stubUsers struct {
	user *domain.User
	err  error
}

func (r *stubUsers) FindByID(context.Context, string) (*domain.User, error) {
	return r.user, r.err
}

func (r *stubUsers) FindByUsername(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUsers) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUsers) FindByUsernameOrEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUsers) FindByGoogleID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUsers) FindByVerificationCode(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (r *stubUsers) Update(context.Context, *domain.User) error {
	return nil
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called, err
}

func TestAuth_ValidToken(t *testing.T) {
	user := &domain.User{ID: "u1", Username: "alice", IsVerified: true}
	mw := Auth(&stubVerifier{userID: "u1"}, &stubUsers{user: user}, true)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := mw(func(c echo.Context) error {
		called = true
		if c.Get("user_id") != "u1" {
			t.Fatalf("user_id not set")
		}
		got, ok := c.Get("user").(*domain.User)
		if !ok || got.Username != "alice" {
			t.Fatalf("user not set")
		}
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	mw := Auth(&stubVerifier{userID: "u1"}, &stubUsers{user: &domain.User{ID: "u1"}}, false)

	rec, called, _ := invoke(t, mw, "")
	if called {
		t.Fatalf("next must not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_BadScheme(t *testing.T) {
	mw := Auth(&stubVerifier{userID: "u1"}, &stubUsers{user: &domain.User{ID: "u1"}}, false)

	rec, called, _ := invoke(t, mw, "Token abc")
	if called {
		t.Fatalf("next must not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	mw := Auth(&stubVerifier{err: domain.ErrTokenInvalid}, &stubUsers{}, false)

	rec, _, err := invoke(t, mw, "Bearer garbage")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Message != "invalid token" {
		t.Fatalf("expected invalid token message, got %v", err)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	mw := Auth(&stubVerifier{err: domain.ErrTokenExpired}, &stubUsers{}, false)

	_, _, err := invoke(t, mw, "Bearer expired")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Message != "token expired" {
		t.Fatalf("expected token expired message, got %v", err)
	}
}

func TestAuth_UnknownAccount(t *testing.T) {
	mw := Auth(&stubVerifier{userID: "ghost"}, &stubUsers{err: domain.ErrUserNotFound}, false)

	rec, called, _ := invoke(t, mw, "Bearer sometoken")
	if called {
		t.Fatalf("next must not be called")
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAuth_UnverifiedBlocked(t *testing.T) {
	user := &domain.User{ID: "u1", IsVerified: false}
	mw := Auth(&stubVerifier{userID: "u1"}, &stubUsers{user: user}, true)

	rec, called, _ := invoke(t, mw, "Bearer sometoken")
	if called {
		t.Fatalf("next must not be called")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAuth_UnverifiedAllowedWhenNotRequired(t *testing.T) {
	user := &domain.User{ID: "u1", IsVerified: false}
	mw := Auth(&stubVerifier{userID: "u1"}, &stubUsers{user: user}, false)

	rec, called, _ := invoke(t, mw, "Bearer sometoken")
	if !called {
		t.Fatalf("next should have been called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
