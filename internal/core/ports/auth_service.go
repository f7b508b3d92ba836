package ports

import (
	"context"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
)

// RegisterInput carries the sign-up form fields.
type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	Confirmation string
}

// AuthService composes the credential store, password hasher, code issuer
// and token issuer into the registration, login and recovery flows.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, usernameOrEmail, password string) (string, *domain.User, error)
	VerifyEmail(ctx context.Context, code string) (*domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, newPassword string) error
	// SetPassword gives a Google-only account a real password. Requires an
	// authenticated, verified caller; the account stays Google-capable.
	SetPassword(ctx context.Context, userID, newPassword string) error
}
