package ports

import "context"

// ImageSource fetches original artwork bytes from an upstream URL.
type ImageSource interface {
	// Fetch returns the image body and its content type.
	Fetch(ctx context.Context, rawURL string) ([]byte, string, error)
}

// BlobCache stores processed artwork keyed by an opaque id.
type BlobCache interface {
	Get(key string) ([]byte, bool)
	Put(key string, blob []byte) error
}
