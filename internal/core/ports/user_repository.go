package ports

import (
	"context"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
)

// UserRepository is the credential store. Create relies on storage-level
// unique constraints so concurrent registrations of the same username or
// email cannot both succeed; collisions come back as *domain.ConflictError
// naming the offending field.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByUsernameOrEmail resolves the login identifier, which may be
	// either field.
	FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*domain.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	// FindByVerificationCode resolves the account holding an outstanding
	// sign-up confirmation code.
	FindByVerificationCode(ctx context.Context, code string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
