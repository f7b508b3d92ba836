// Package lastfm is a minimal client for the Last.fm tag.gettoptracks API,
// the catalog behind song recommendations.
package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/beatbridge/beatbridge-api/internal/core/ports"
)

const apiEndpoint = "http://ws.audioscrobbler.com/2.0/"

// Client implements ports.TrackSource.
type Client struct {
	apiKey string
	client *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type topTracksResponse struct {
	Tracks struct {
		Track []struct {
			Name   string `json:"name"`
			URL    string `json:"url"`
			Artist struct {
				Name string `json:"name"`
			} `json:"artist"`
		} `json:"track"`
	} `json:"tracks"`
}

func (c *Client) TopTracks(ctx context.Context, genre string, limit int) ([]ports.Track, error) {
	q := url.Values{
		"method":  {"tag.gettoptracks"},
		"tag":     {genre},
		"api_key": {c.apiKey},
		"format":  {"json"},
		"limit":   {strconv.Itoa(limit)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiEndpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lastfm request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lastfm returned %d", resp.StatusCode)
	}

	var body topTracksResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode lastfm response: %w", err)
	}

	tracks := make([]ports.Track, 0, len(body.Tracks.Track))
	for _, t := range body.Tracks.Track {
		tracks = append(tracks, ports.Track{
			Name:   t.Name,
			Artist: t.Artist.Name,
			URL:    t.URL,
		})
	}
	return tracks, nil
}
