package service

import (
	"context"
	"time"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
	"github.com/beatbridge/beatbridge-api/internal/core/ports"
)

type favoriteService struct {
	repo ports.FavoriteRepository
}

// NewFavoriteService returns a FavoriteService implementation.
func NewFavoriteService(repo ports.FavoriteRepository) ports.FavoriteService {
	return &favoriteService{repo: repo}
}

func (s *favoriteService) Add(ctx context.Context, userID string, in ports.AddFavoriteInput) (*domain.Favorite, error) {
	fields := map[string]string{}
	if in.SongName == "" {
		fields["song_name"] = "song name is required"
	}
	if in.ArtistName == "" {
		fields["artist_name"] = "artist name is required"
	}
	if in.SongURL == "" {
		fields["song_url"] = "song url is required"
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	return s.repo.Insert(ctx, &domain.Favorite{
		UserID:           userID,
		SongName:         in.SongName,
		ArtistName:       in.ArtistName,
		AlbumName:        in.AlbumName,
		SongURL:          in.SongURL,
		Duration:         in.Duration,
		AlbumImage:       in.AlbumImage,
		RhythmComplexity: in.RhythmComplexity,
		TempoRating:      in.TempoRating,
		SkillLevel:       in.SkillLevel,
		Tags:             in.Tags,
		CreatedAt:        time.Now().UTC(),
	})
}

func (s *favoriteService) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *favoriteService) Remove(ctx context.Context, userID, favoriteID string) error {
	return s.repo.Delete(ctx, userID, favoriteID)
}
