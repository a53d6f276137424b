package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
)

// DiskCache stores processed artwork blobs as files under a cache directory.
// Writes go through a temp file and a rename so readers never observe a
// partially written blob.
type DiskCache struct {
	dir    string
	tmpExt string
}

// NewDiskCache creates the cache directory if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artwork cache dir: %w", err)
	}
	return &DiskCache{
		dir:    dir,
		tmpExt: fmt.Sprintf(".%d", os.Getpid()),
	}, nil
}

// Get returns the cached blob for key, if present.
func (c *DiskCache) Get(key string) ([]byte, bool) {
	blob, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, false
	}
	return blob, true
}

// Put stores the blob under key.
func (c *DiskCache) Put(key string, blob []byte) error {
	fn := filepath.Join(c.dir, key)
	tmp := fn + c.tmpExt
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, fn); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
