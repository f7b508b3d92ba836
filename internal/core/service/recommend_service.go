package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
	"github.com/beatbridge/beatbridge-api/internal/core/ports"
)

const trackFetchLimit = 50

type recommendService struct {
	customizations ports.CustomizationRepository
	tracks         ports.TrackSource
	log            zerolog.Logger
}

// NewRecommendService returns a RecommendService implementation.
func NewRecommendService(
	customizations ports.CustomizationRepository,
	tracks ports.TrackSource,
	log zerolog.Logger,
) ports.RecommendService {
	return &recommendService{customizations: customizations, tracks: tracks, log: log}
}

// Recommend picks a random track for the first usable genre. Saved
// favorite genres win over the ones submitted with the request.
func (s *recommendService) Recommend(ctx context.Context, userID string, genres []string) (*ports.Track, error) {
	if custom, err := s.customizations.FindByUser(ctx, userID); err == nil && len(custom.FavoriteGenres) > 0 {
		genres = custom.FavoriteGenres
	} else if err != nil && !errors.Is(err, domain.ErrNoCustomization) {
		return nil, err
	}

	if len(genres) == 0 {
		return nil, domain.NewValidationError("genres", "no genres selected")
	}

	genre := genres[0]
	tracks, err := s.tracks.TopTracks(ctx, genre, trackFetchLimit)
	if err != nil {
		s.log.Error().Err(err).Str("genre", genre).Msg("track lookup failed")
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrNoTracksFound, genre)
	}

	track := tracks[rand.Intn(len(tracks))]
	return &track, nil
}
