package service

import (
	"context"
	"time"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
	"github.com/beatbridge/beatbridge-api/internal/core/ports"
)

type jamService struct {
	repo ports.JamSessionRepository
}

// NewJamSessionService returns a JamSessionService implementation.
func NewJamSessionService(repo ports.JamSessionRepository) ports.JamSessionService {
	return &jamService{repo: repo}
}

func validateJamInput(in ports.JamSessionInput) error {
	fields := map[string]string{}
	if in.Title == "" {
		fields["title"] = "title is required"
	}
	if in.Pattern == "" {
		fields["pattern"] = "pattern is required"
	}
	if in.Tempo <= 0 {
		fields["tempo"] = "tempo must be positive"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func (s *jamService) Create(ctx context.Context, userID string, in ports.JamSessionInput) (*domain.JamSession, error) {
	if err := validateJamInput(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.repo.Insert(ctx, &domain.JamSession{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Tempo:       in.Tempo,
		Pattern:     in.Pattern,
		Genre:       in.Genre,
		IsPublic:    in.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *jamService) Get(ctx context.Context, id string) (*domain.JamSession, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *jamService) ListMine(ctx context.Context, userID string) ([]domain.JamSession, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *jamService) Explore(ctx context.Context) ([]domain.JamSession, error) {
	return s.repo.ListPublic(ctx)
}

func (s *jamService) Update(ctx context.Context, userID, id string, in ports.JamSessionInput) (*domain.JamSession, error) {
	if err := validateJamInput(in); err != nil {
		return nil, err
	}

	jam, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if jam.UserID != userID {
		// Ownership failures look like absence to outsiders.
		return nil, domain.ErrJamNotFound
	}

	jam.Title = in.Title
	jam.Description = in.Description
	jam.Tempo = in.Tempo
	jam.Pattern = in.Pattern
	jam.Genre = in.Genre
	jam.IsPublic = in.IsPublic
	jam.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, jam); err != nil {
		return nil, err
	}
	return jam, nil
}

func (s *jamService) Delete(ctx context.Context, userID, id string) error {
	jam, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if jam.UserID != userID {
		return domain.ErrJamNotFound
	}
	return s.repo.Delete(ctx, id)
}
