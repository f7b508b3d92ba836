package ports

import "context"

// Track is a recommended song.
type Track struct {
	Name   string `json:"name"`
	Artist string `json:"artist"`
	URL    string `json:"url"`
}

// TrackSource fetches candidate tracks for a genre from an external catalog
// (Last.fm).
type TrackSource interface {
	TopTracks(ctx context.Context, genre string, limit int) ([]Track, error)
}

// RecommendService picks a song for a user, preferring the genres saved in
// their customization over the ones submitted with the request.
type RecommendService interface {
	Recommend(ctx context.Context, userID string, genres []string) (*Track, error)
}
