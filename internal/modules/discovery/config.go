package discovery

import "time"

// Config holds the discovery module configuration.
type Config struct {
	// ProviderURL is the Invidious instance searches are proxied to.
	ProviderURL string `env:"AURALIS_SEARCH_PROVIDER" envDefault:"https://invidious.snopyta.org"`

	// CacheTTL is how long search results stay cached.
	CacheTTL time.Duration `env:"AURALIS_SEARCH_CACHE_TTL" envDefault:"5m"`

	// RedisAddress enables the shared redis result cache when set,
	// e.g. "localhost:6379". Empty means in-process caching only.
	RedisAddress  string `env:"AURALIS_REDIS_ADDRESS"`
	RedisPassword string `env:"AURALIS_REDIS_PASSWORD"`
	RedisDB       int    `env:"AURALIS_REDIS_DB" envDefault:"0"`

	// HomeSeeds are the queries used to build the home view sections.
	HomeSeeds []string `env:"AURALIS_HOME_SEEDS" envSeparator:"," envDefault:"trending music,lofi hip hop,top hits"`
}
