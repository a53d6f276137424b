package library

// Config holds the library module configuration.
type Config struct {
	// DatabaseFile is the sqlite database path. When empty, the file
	// lives under the server's data directory.
	DatabaseFile string `env:"AURALIS_LIBRARY_DB"`
}
