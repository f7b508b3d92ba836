package ports

import (
	"context"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
)

// ResetTicketStore holds transient password-reset tickets keyed by email.
// Implementations must expire tickets on their own (TTL) and support
// concurrent access.
type ResetTicketStore interface {
	// Put stores a ticket, replacing any outstanding one for the same email
	// and restarting its TTL.
	Put(ctx context.Context, ticket *domain.ResetTicket) error
	// Get returns domain.ErrTicketNotFound when no live ticket exists.
	Get(ctx context.Context, email string) (*domain.ResetTicket, error)
	// Delete consumes a ticket. Deleting an absent ticket is not an error.
	Delete(ctx context.Context, email string) error
}
