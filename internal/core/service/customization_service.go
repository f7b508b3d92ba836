package service

import (
	"context"
	"errors"
	"time"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
	"github.com/beatbridge/beatbridge-api/internal/core/ports"
)

type customizationService struct {
	repo ports.CustomizationRepository
}

// NewCustomizationService returns a CustomizationService implementation.
func NewCustomizationService(repo ports.CustomizationRepository) ports.CustomizationService {
	return &customizationService{repo: repo}
}

func (s *customizationService) Save(ctx context.Context, userID string, in ports.CustomizationInput) error {
	fields := map[string]string{}
	if in.SkillLevel == "" {
		fields["skill_level"] = "skill level is required"
	}
	if in.PracticeFrequency == "" {
		fields["practice_frequency"] = "practice frequency is required"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}

	return s.repo.Upsert(ctx, &domain.Customization{
		UserID:            userID,
		SkillLevel:        in.SkillLevel,
		PracticeFrequency: in.PracticeFrequency,
		FavoriteGenres:    in.FavoriteGenres,
		UpdatedAt:         time.Now().UTC(),
	})
}

func (s *customizationService) Get(ctx context.Context, userID string) (*domain.Customization, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *customizationService) Progress(ctx context.Context, userID string) (*domain.ChapterProgress, error) {
	c, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoCustomization) {
			p := domain.ChapterProgress{}.Normalize()
			return &p, nil
		}
		return nil, err
	}
	p := domain.ChapterProgress{
		Chapter:      c.ChapterProgress,
		Chapter0Page: c.Chapter0PageProgress,
		Chapter1Page: c.Chapter1PageProgress,
	}.Normalize()
	return &p, nil
}

// AdvanceProgress clamps submissions to the starting position, so omitted,
// zero and negative fields all leave the stored values alone.
func (s *customizationService) AdvanceProgress(ctx context.Context, userID string, p domain.ChapterProgress) (*domain.ChapterProgress, error) {
	return s.repo.AdvanceProgress(ctx, userID, p.Normalize())
}
