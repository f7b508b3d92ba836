package domain

import "time"

// User models an account in the system. An account is created either by
// registration (unverified, real password hash) or by a first Google login
// (verified, no password hash).
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`

	// PasswordHash is empty for Google-only accounts that never set a
	// password. Password login is disallowed while it is empty.
	PasswordHash string `json:"-"`

	IsVerified bool `json:"is_verified"`

	// PendingVerificationCode is the outstanding sign-up confirmation code.
	// Single use: cleared on a successful match.
	PendingVerificationCode string `json:"-"`

	// GoogleID is set when the account was created via or linked to Google.
	GoogleID string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPassword reports whether password login is possible for this account.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
