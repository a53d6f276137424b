package ports

import (
	"context"

	"github.com/klyne/auralis/internal/modules/library/domain"
)

// SearchIndex provides full-text search over the library's tracks.
type SearchIndex interface {
	// Index adds or updates a track in the index.
	Index(ctx context.Context, track domain.Track) error

	// Remove deletes a track from the index by ID.
	Remove(ctx context.Context, id string) error

	// Search returns the IDs of matching tracks, best matches first.
	Search(ctx context.Context, term string, size int) ([]string, error)

	// Close releases the index.
	Close() error
}
