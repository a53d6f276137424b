package server

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the server configuration loaded from environment variables.
type Config struct {
	// ListenAddress is the host:port the HTTP server binds to.
	ListenAddress string `env:"AURALIS_LISTEN" envDefault:":3000"`

	// DataDir is where the library database and caches live.
	DataDir string `env:"AURALIS_DATA_DIR" envDefault:"./data"`

	// AllowedOrigins configures CORS for the web player.
	AllowedOrigins []string `env:"AURALIS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// LoadConfig loads configuration from a .env file (if present) and the
// environment. Returns an error if required fields are missing.
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; the environment alone is enough.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for obviously broken values.
func (c *Config) Validate() error {
	if c.ListenAddress == "" {
		return fmt.Errorf("AURALIS_LISTEN must not be empty")
	}
	if c.DataDir == "" {
		return fmt.Errorf("AURALIS_DATA_DIR must not be empty")
	}
	return nil
}
