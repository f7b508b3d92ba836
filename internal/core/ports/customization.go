package ports

import (
	"context"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
)

// CustomizationRepository stores one practice profile per user (upsert).
type CustomizationRepository interface {
	Upsert(ctx context.Context, c *domain.Customization) error
	FindByUser(ctx context.Context, userID string) (*domain.Customization, error)
	// AdvanceProgress moves the stored chapter progress forward to the given
	// values, never backward, creating the record when absent. Returns the
	// resulting progress.
	AdvanceProgress(ctx context.Context, userID string, p domain.ChapterProgress) (*domain.ChapterProgress, error)
}

type CustomizationInput struct {
	SkillLevel        string
	PracticeFrequency string
	FavoriteGenres    []string
}

type CustomizationService interface {
	Save(ctx context.Context, userID string, in CustomizationInput) error
	Get(ctx context.Context, userID string) (*domain.Customization, error)
	// Progress returns the caller's chapter progress, starting positions
	// when nothing is stored yet.
	Progress(ctx context.Context, userID string) (*domain.ChapterProgress, error)
	// AdvanceProgress applies a forward-only update; omitted or lower
	// fields leave the stored values untouched.
	AdvanceProgress(ctx context.Context, userID string, p domain.ChapterProgress) (*domain.ChapterProgress, error)
}
