package discovery

import (
	"context"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gorilla/mux"
	redislib "github.com/redis/go-redis/v9"

	"github.com/klyne/auralis/internal/modules/discovery/application/ports"
	"github.com/klyne/auralis/internal/modules/discovery/application/usecases"
	"github.com/klyne/auralis/internal/modules/discovery/infrastructure"
	"github.com/klyne/auralis/internal/modules/discovery/presentation/httpapi"
	"github.com/klyne/auralis/internal/server"
)

func init() {
	server.Register(&Module{})
}

// Compile-time interface checks.
var _ server.ConfigurableModule = (*Module)(nil)

// Module proxies track search to an upstream provider.
type Module struct {
	config  *Config
	redis   *redislib.Client
	handler *httpapi.Handler
}

// Name returns the module name.
func (m *Module) Name() string {
	return "discovery"
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *Module) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init wires the provider, cache, and handler.
func (m *Module) Init(_ server.ModuleDependencies) error {
	if m.config == nil {
		m.config = &Config{CacheTTL: infrastructure.DefaultCacheTTL}
	}

	var cache ports.ResultCache
	if m.config.RedisAddress != "" {
		client := redislib.NewClient(&redislib.Options{
			Addr:     m.config.RedisAddress,
			Password: m.config.RedisPassword,
			DB:       m.config.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := client.Ping(ctx).Err()
		cancel()

		if err != nil {
			slog.Warn("redis unreachable, falling back to in-process cache",
				"address", m.config.RedisAddress, "error", err)
			_ = client.Close()
			cache = infrastructure.NewMemoryCache(m.config.CacheTTL)
		} else {
			m.redis = client
			cache = infrastructure.NewRedisCache(client, m.config.CacheTTL)
		}
	} else {
		cache = infrastructure.NewMemoryCache(m.config.CacheTTL)
	}

	provider := infrastructure.NewInvidiousProvider(m.config.ProviderURL)
	service := usecases.NewSearchService(provider, cache, m.config.HomeSeeds)
	m.handler = httpapi.NewHandler(service)

	slog.Info("discovery module initialized",
		"provider", m.config.ProviderURL,
		"redis", m.redis != nil)
	return nil
}

// RegisterRoutes attaches the module's HTTP endpoints.
func (m *Module) RegisterRoutes(r *mux.Router) {
	m.handler.RegisterRoutes(r)
}

// Shutdown closes the redis client if one was opened.
func (m *Module) Shutdown() error {
	if m.redis != nil {
		return m.redis.Close()
	}
	return nil
}
