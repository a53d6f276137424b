package artwork

import (
	"log/slog"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/gorilla/mux"

	"github.com/klyne/auralis/internal/modules/artwork/application/usecases"
	"github.com/klyne/auralis/internal/modules/artwork/infrastructure"
	"github.com/klyne/auralis/internal/modules/artwork/presentation/httpapi"
	"github.com/klyne/auralis/internal/server"
)

func init() {
	server.Register(&Module{})
}

// Compile-time interface checks.
var _ server.ConfigurableModule = (*Module)(nil)

// Module proxies and resizes track artwork.
type Module struct {
	config  *Config
	handler *httpapi.Handler
}

// Name returns the module name.
func (m *Module) Name() string {
	return "artwork"
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

// Init builds the artwork service and its disk cache.
func (m *Module) Init(deps server.ModuleDependencies) error {
	if m.config == nil {
		m.config = &Config{}
	}

	dir := m.config.CacheDir
	if dir == "" {
		dir = filepath.Join(deps.Config.DataDir, "artwork")
	}

	cache, err := infrastructure.NewDiskCache(dir)
	if err != nil {
		return err
	}

	service := usecases.NewArtworkService(infrastructure.NewHTTPSource(), cache)
	m.handler = httpapi.NewHandler(service)

	slog.Info("artwork module initialized", "cache_dir", dir)
	return nil
}

// RegisterRoutes attaches the module's HTTP endpoints.
func (m *Module) RegisterRoutes(r *mux.Router) {
	m.handler.RegisterRoutes(r)
}

// Shutdown releases module resources.
func (m *Module) Shutdown() error {
	return nil
}
