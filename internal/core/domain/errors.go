package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Identity core error taxonomy. Handlers and the central HTTP error handler
// translate these into status codes and messages; nothing below the
// orchestrators ever surfaces a raw storage or crypto error.
var (
	// ErrInvalidCredentials covers unknown accounts and wrong passwords
	// alike, so a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrGoogleOnlyAccount rejects password login for accounts that signed
	// up with Google and never set a password.
	ErrGoogleOnlyAccount = errors.New("this account uses Google sign-in; log in with Google or set a password first")

	ErrUserNotFound = errors.New("user not found")
	ErrNotVerified  = errors.New("email verification required")

	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")

	ErrInvalidOTP       = errors.New("invalid OTP")
	ErrTicketNotFound   = errors.New("no password reset requested for this email")
	ErrOTPNotVerified   = errors.New("OTP has not been verified")
	ErrCodeNotFound     = errors.New("invalid or already used verification code")
	ErrProviderFailure  = errors.New("google authentication failed")
	ErrJamTitleTaken    = errors.New("you already have a jam session with this title")
	ErrJamNotFound      = errors.New("jam session not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrNoCustomization  = errors.New("no customization saved")
	ErrNoTracksFound    = errors.New("no tracks found for this genre")
)

// ConflictError reports which uniqueness constraints a registration collided
// with ("username", "email"), so the client can highlight every offending
// field, not just the first.
type ConflictError struct {
	Fields []string
}

func (e *ConflictError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s already exists", f)
	}
	return strings.Join(parts, "; ")
}

// ValidationError carries one message per offending field so a client can
// render every problem at once instead of only the first.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError builds a ValidationError from field/message pairs.
func NewValidationError(pairs ...string) *ValidationError {
	fields := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		fields[pairs[i]] = pairs[i+1]
	}
	return &ValidationError{Fields: fields}
}
