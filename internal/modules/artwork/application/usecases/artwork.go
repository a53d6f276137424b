package usecases

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/jxskiss/base62"

	"github.com/klyne/auralis/internal/modules/artwork/application/ports"
)

// MaxWidth caps the width a client may request.
const MaxWidth = 2048

// Artwork is a processed image ready to be served.
type Artwork struct {
	Blob        []byte
	ContentType string
}

// ArtworkService fetches, resizes, and caches track artwork.
type ArtworkService struct {
	source ports.ImageSource
	cache  ports.BlobCache
}

// NewArtworkService creates an ArtworkService.
func NewArtworkService(source ports.ImageSource, cache ports.BlobCache) *ArtworkService {
	return &ArtworkService{
		source: source,
		cache:  cache,
	}
}

// Resized returns the artwork at rawURL scaled down to width pixels wide,
// preserving aspect ratio. A width of 0 returns the original bytes untouched.
// Processed results are cached on disk keyed by url and width.
func (s *ArtworkService) Resized(ctx context.Context, rawURL string, width int) (*Artwork, error) {
	if rawURL == "" {
		return nil, ErrEmptyURL
	}
	if width < 0 || width > MaxWidth {
		return nil, ErrInvalidWidth
	}

	key := cacheKey(rawURL, width)
	if blob, ok := s.cache.Get(key); ok {
		// The cache stores bare blobs, so the type is sniffed back out.
		// Resized entries are always JPEG; passthrough entries keep
		// whatever format the upstream served.
		return &Artwork{Blob: blob, ContentType: http.DetectContentType(blob)}, nil
	}

	blob, contentType, err := s.source.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if width == 0 {
		if err := s.cache.Put(key, blob); err != nil {
			slog.Warn("failed to cache artwork", "key", key, "error", err)
		}
		if contentType == "" {
			contentType = http.DetectContentType(blob)
		}
		return &Artwork{Blob: blob, ContentType: contentType}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	// Never scale up past the original.
	if img.Bounds().Dx() > width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode artwork: %w", err)
	}

	if err := s.cache.Put(key, buf.Bytes()); err != nil {
		slog.Warn("failed to cache artwork", "key", key, "error", err)
	}

	return &Artwork{Blob: buf.Bytes(), ContentType: "image/jpeg"}, nil
}

// cacheKey derives a filesystem-safe id from the url and width.
func cacheKey(rawURL string, width int) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%d", rawURL, width))
	return base62.StdEncoding.EncodeToString(sum[:16])
}
