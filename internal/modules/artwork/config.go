package artwork

// Config holds the artwork module configuration.
type Config struct {
	// CacheDir is where processed artwork is stored. When empty, the
	// cache lives under the server's data directory.
	CacheDir string `env:"AURALIS_ARTWORK_CACHE_DIR"`
}
