package ports

import (
	"context"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
)

// FavoriteRepository persists a user's saved songs.
type FavoriteRepository interface {
	Insert(ctx context.Context, fav *domain.Favorite) (*domain.Favorite, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error)
	// Delete removes the favorite only when it belongs to userID.
	Delete(ctx context.Context, userID, favoriteID string) error
}

// AddFavoriteInput carries the song fields from the client.
type AddFavoriteInput struct {
	SongName         string
	ArtistName       string
	AlbumName        string
	SongURL          string
	Duration         int
	AlbumImage       string
	RhythmComplexity int
	TempoRating      int
	SkillLevel       string
	Tags             []string
}

type FavoriteService interface {
	Add(ctx context.Context, userID string, in AddFavoriteInput) (*domain.Favorite, error)
	List(ctx context.Context, userID string) ([]domain.Favorite, error)
	Remove(ctx context.Context, userID, favoriteID string) error
}
