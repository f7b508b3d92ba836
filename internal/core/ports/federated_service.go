package ports

import (
	"context"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
)

// FederatedService reconciles a Google identity assertion with zero, one,
// or an already-linked account, then mints a bearer token for the result.
type FederatedService interface {
	// AuthURL starts the flow; state is an opaque CSRF nonce.
	AuthURL(state string) string
	// HandleCallback exchanges the authorization code and resolves or
	// creates the account.
	HandleCallback(ctx context.Context, code string) (string, *domain.User, error)
}
