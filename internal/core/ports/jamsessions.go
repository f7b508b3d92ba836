package ports

import (
	"context"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
)

// JamSessionRepository persists jam sessions. Insert reports
// domain.ErrJamTitleTaken when the owner already has a session with the
// same title.
type JamSessionRepository interface {
	Insert(ctx context.Context, jam *domain.JamSession) (*domain.JamSession, error)
	FindByID(ctx context.Context, id string) (*domain.JamSession, error)
	ListByUser(ctx context.Context, userID string) ([]domain.JamSession, error)
	ListPublic(ctx context.Context) ([]domain.JamSession, error)
	Update(ctx context.Context, jam *domain.JamSession) error
	Delete(ctx context.Context, id string) error
}

// JamSessionInput carries the create/update fields.
type JamSessionInput struct {
	Title       string
	Description string
	Tempo       int
	Pattern     string
	Genre       string
	IsPublic    bool
}

type JamSessionService interface {
	Create(ctx context.Context, userID string, in JamSessionInput) (*domain.JamSession, error)
	Get(ctx context.Context, id string) (*domain.JamSession, error)
	ListMine(ctx context.Context, userID string) ([]domain.JamSession, error)
	Explore(ctx context.Context) ([]domain.JamSession, error)
	Update(ctx context.Context, userID, id string, in JamSessionInput) (*domain.JamSession, error)
	Delete(ctx context.Context, userID, id string) error
}
