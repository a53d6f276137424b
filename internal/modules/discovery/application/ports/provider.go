package ports

import (
	"context"

	player "github.com/klyne/auralis/internal/modules/player/domain"
)

// Track is the search result shape handed to clients. It is the same
// value the player queues and the library stores.
type Track = player.Track

// SearchProvider finds tracks at an upstream video/audio catalog.
type SearchProvider interface {
	// Search returns tracks matching the term, best matches first.
	Search(ctx context.Context, term string) ([]Track, error)
}

// ResultCache memoizes search results per normalized term.
type ResultCache interface {
	// Get returns the cached tracks for key, if present and fresh.
	Get(ctx context.Context, key string) ([]Track, bool)

	// Set stores tracks under key.
	Set(ctx context.Context, key string, tracks []Track)
}
