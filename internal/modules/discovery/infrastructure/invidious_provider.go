package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/klyne/auralis/internal/modules/discovery/application/ports"
	player "github.com/klyne/auralis/internal/modules/player/domain"
)

// Compile-time check that InvidiousProvider implements ports.SearchProvider.
var _ ports.SearchProvider = (*InvidiousProvider)(nil)

// defaultRequestTimeout bounds a single upstream search call.
const defaultRequestTimeout = 10 * time.Second

// InvidiousProvider searches an Invidious instance's v1 API.
type InvidiousProvider struct {
	baseURL string
	client  *http.Client
}

// NewInvidiousProvider creates a provider for the given instance URL,
// e.g. "https://invidious.example.org".
func NewInvidiousProvider(baseURL string) *InvidiousProvider {
	return &InvidiousProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultRequestTimeout},
	}
}

// invidiousVideo is the subset of the search response we consume.
type invidiousVideo struct {
	Type            string `json:"type"`
	VideoID         string `json:"videoId"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	LengthSeconds   int    `json:"lengthSeconds"`
	ViewCount       int64  `json:"viewCount"`
	VideoThumbnails []struct {
		Quality string `json:"quality"`
		URL     string `json:"url"`
	} `json:"videoThumbnails"`
}

// Search queries the instance for videos matching the term.
func (p *InvidiousProvider) Search(ctx context.Context, term string) ([]ports.Track, error) {
	endpoint := fmt.Sprintf("%s/api/v1/search?type=video&q=%s",
		p.baseURL, url.QueryEscape(term))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search upstream returned status %d", resp.StatusCode)
	}

	var videos []invidiousVideo
	if err := json.NewDecoder(resp.Body).Decode(&videos); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	tracks := make([]ports.Track, 0, len(videos))
	for _, video := range videos {
		if video.VideoID == "" {
			continue
		}
		tracks = append(tracks, ports.Track{
			ID:        video.VideoID,
			Title:     video.Title,
			Thumbnail: pickThumbnail(video),
			Author:    video.Author,
			Duration:  player.FormatTime(float64(video.LengthSeconds)),
			Views:     video.ViewCount,
		})
	}
	return tracks, nil
}

// pickThumbnail prefers the medium quality thumbnail and falls back to
// the first one available.
func pickThumbnail(video invidiousVideo) string {
	for _, thumbnail := range video.VideoThumbnails {
		if thumbnail.Quality == "medium" {
			return thumbnail.URL
		}
	}
	if len(video.VideoThumbnails) > 0 {
		return video.VideoThumbnails[0].URL
	}
	return ""
}
