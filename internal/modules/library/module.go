package library

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/gorilla/mux"

	"github.com/klyne/auralis/internal/modules/library/application/usecases"
	"github.com/klyne/auralis/internal/modules/library/infrastructure"
	"github.com/klyne/auralis/internal/modules/library/presentation/httpapi"
	"github.com/klyne/auralis/internal/server"
)

func init() {
	server.Register(&Module{})
}

// Compile-time interface checks.
var _ server.ConfigurableModule = (*Module)(nil)

// Module provides liked tracks, playlists, and library search over HTTP.
type Module struct {
	config  *Config
	store   *infrastructure.SqliteStore
	index   *infrastructure.BleveIndex
	handler *httpapi.Handler
}

// Name returns the module name.
func (m *Module) Name() string {
	return "library"
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

// Init opens storage and builds the library service.
func (m *Module) Init(deps server.ModuleDependencies) error {
	if m.config == nil {
		m.config = &Config{}
	}

	filename := m.config.DatabaseFile
	if filename == "" {
		filename = filepath.Join(deps.Config.DataDir, "library.db")
	}

	store, err := infrastructure.NewSqliteStore(filename)
	if err != nil {
		return err
	}
	m.store = store

	index, err := infrastructure.NewBleveIndex()
	if err != nil {
		_ = store.Close()
		return err
	}
	m.index = index

	service, err := usecases.NewLibraryService(context.Background(), store, index)
	if err != nil {
		_ = index.Close()
		_ = store.Close()
		return err
	}
	m.handler = httpapi.NewHandler(service)

	slog.Info("library module initialized", "database", filename)
	return nil
}

// RegisterRoutes attaches the module's HTTP endpoints.
func (m *Module) RegisterRoutes(r *mux.Router) {
	m.handler.RegisterRoutes(r)
}

// Shutdown closes the index and the store.
func (m *Module) Shutdown() error {
	var firstErr error
	if m.index != nil {
		if err := m.index.Close(); err != nil {
			firstErr = err
		}
	}
	if m.store != nil {
		if err := m.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
