package infrastructure

import (
	"context"
	"strings"

	bleve "github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/klyne/auralis/internal/modules/library/application/ports"
	"github.com/klyne/auralis/internal/modules/library/domain"
)

// Compile-time check that BleveIndex implements ports.SearchIndex.
var _ ports.SearchIndex = (*BleveIndex)(nil)

// BleveIndex is an in-memory full-text index over library tracks.
// The library is small enough to rebuild the index on startup, so
// nothing is persisted.
type BleveIndex struct {
	index bleve.Index
}

// trackDocument is the document stored in bleve per track.
type trackDocument struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	TitleExact string `json:"title_exact"`
	Author     string `json:"author"`
}

// NewBleveIndex creates a new empty in-memory index.
func NewBleveIndex() (*BleveIndex, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}
	return &BleveIndex{index: idx}, nil
}

// buildIndexMapping builds the bleve field mapping configuration.
func buildIndexMapping() mapping.IndexMapping {
	m := bleve.NewIndexMapping()

	doc := bleve.NewDocumentMapping()

	text := bleve.NewTextFieldMapping()
	text.Analyzer = "en"
	text.Store = false
	text.Index = true

	// keyword mapping for exact matches like IDs
	keyword := bleve.NewTextFieldMapping()
	keyword.Analyzer = "keyword"
	keyword.Store = true
	keyword.Index = true

	doc.AddFieldMappingsAt("id", keyword)
	doc.AddFieldMappingsAt("title", text)
	doc.AddFieldMappingsAt("title_exact", keyword)
	doc.AddFieldMappingsAt("author", text)

	m.DefaultMapping = doc
	return m
}

// Index adds or updates a track.
func (b *BleveIndex) Index(_ context.Context, track domain.Track) error {
	return b.index.Index(track.ID, trackDocument{
		ID:         track.ID,
		Title:      track.Title,
		TitleExact: strings.ToLower(track.Title),
		Author:     track.Author,
	})
}

// Remove deletes a track from the index.
func (b *BleveIndex) Remove(_ context.Context, id string) error {
	return b.index.Delete(id)
}

// Search returns IDs of matching tracks, best matches first.
// Title matches outrank author matches; exact titles outrank both.
func (b *BleveIndex) Search(ctx context.Context, term string, size int) ([]string, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil, nil
	}
	if size <= 0 {
		size = 20
	}

	const (
		boostTitleExact  = 50.0
		boostTitlePhrase = 12.0
		boostTitlePrefix = 6.0
		boostTitleField  = 3.0
		boostAuthorField = 1.0
	)

	boolQuery := bleve.NewBooleanQuery()

	termExact := bleve.NewTermQuery(term)
	termExact.SetField("title_exact")
	termExact.SetBoost(boostTitleExact)
	boolQuery.AddShould(termExact)

	matchPhrase := bleve.NewMatchPhraseQuery(term)
	matchPhrase.SetField("title")
	matchPhrase.SetBoost(boostTitlePhrase)
	boolQuery.AddShould(matchPhrase)

	prefixFull := bleve.NewPrefixQuery(term)
	prefixFull.SetField("title")
	prefixFull.SetBoost(boostTitlePrefix)
	boolQuery.AddShould(prefixFull)

	for _, token := range strings.Fields(term) {
		fuzz := 1
		if len(token) >= 6 {
			fuzz = 2
		}

		for _, field := range []string{"title", "author"} {
			boost := boostAuthorField
			if field == "title" {
				boost = boostTitleField
			}

			fq := bleve.NewFuzzyQuery(token)
			fq.SetField(field)
			fq.SetFuzziness(fuzz)
			fq.SetBoost(boost)
			boolQuery.AddShould(fq)

			pq := bleve.NewPrefixQuery(token)
			pq.SetField(field)
			pq.SetBoost(boost)
			boolQuery.AddShould(pq)
		}
	}

	request := bleve.NewSearchRequestOptions(boolQuery, size, 0, false)
	result, err := b.index.SearchInContext(ctx, request)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

// Close releases the index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}
