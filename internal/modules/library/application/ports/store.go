package ports

import "context"

// Store persists library documents as namespaced JSON blobs. Each
// namespace holds exactly one document that is replaced wholesale on
// every save.
type Store interface {
	// Load reads the document stored under namespace into v.
	// A missing namespace leaves v untouched and returns no error.
	Load(ctx context.Context, namespace string, v any) error

	// Save replaces the document stored under namespace with v.
	Save(ctx context.Context, namespace string, v any) error

	// Close releases the underlying storage.
	Close() error
}
