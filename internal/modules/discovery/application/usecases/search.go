package usecases

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/klyne/auralis/internal/modules/discovery/application/ports"
)

// MaxResults caps how many tracks a single search returns.
const MaxResults = 20

// ErrEmptyTerm is returned when the search term is blank.
var ErrEmptyTerm = errors.New("search query is required")

// HomeSection is one row of the home view: a label and the tracks
// found for its seed query.
type HomeSection struct {
	Title  string        `json:"title"`
	Tracks []ports.Track `json:"tracks"`
}

// SearchService proxies track searches to an upstream provider with a
// read-through result cache.
type SearchService struct {
	provider ports.SearchProvider
	cache    ports.ResultCache
	seeds    []string
}

// NewSearchService creates a new SearchService. seeds are the queries
// used to build the home view sections.
func NewSearchService(provider ports.SearchProvider, cache ports.ResultCache, seeds []string) *SearchService {
	return &SearchService{
		provider: provider,
		cache:    cache,
		seeds:    seeds,
	}
}

// normalizeTerm produces the cache key for a search term.
func normalizeTerm(term string) string {
	return strings.ToLower(strings.Join(strings.Fields(term), " "))
}

// Search returns up to MaxResults tracks for the term, from cache when
// fresh.
func (s *SearchService) Search(ctx context.Context, term string) ([]ports.Track, error) {
	key := normalizeTerm(term)
	if key == "" {
		return nil, ErrEmptyTerm
	}

	if tracks, ok := s.cache.Get(ctx, key); ok {
		slog.Debug("search cache hit", "term", key)
		return tracks, nil
	}

	tracks, err := s.provider.Search(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(tracks) > MaxResults {
		tracks = tracks[:MaxResults]
	}

	s.cache.Set(ctx, key, tracks)
	return tracks, nil
}

// Home builds the seeded home view sections. A failing seed drops its
// section rather than failing the whole view.
func (s *SearchService) Home(ctx context.Context) []HomeSection {
	sections := make([]HomeSection, 0, len(s.seeds))
	for _, seed := range s.seeds {
		tracks, err := s.Search(ctx, seed)
		if err != nil {
			slog.Warn("home section query failed", "seed", seed, "error", err)
			continue
		}
		sections = append(sections, HomeSection{
			Title:  seed,
			Tracks: tracks,
		})
	}
	return sections
}
