package status

import (
	"github.com/gorilla/mux"

	"github.com/klyne/auralis/internal/modules/status/presentation"
	"github.com/klyne/auralis/internal/server"
)

func init() {
	server.Register(&Module{})
}

// Module provides health and status endpoints.
type Module struct {
	handler *presentation.StatusHandler
}

// Name returns the module name.
func (m *Module) Name() string {
	return "status"
}

// Init initializes the module.
func (m *Module) Init(deps server.ModuleDependencies) error {
	m.handler = presentation.NewStatusHandler()
	return nil
}

// RegisterRoutes attaches the module's HTTP endpoints.
func (m *Module) RegisterRoutes(r *mux.Router) {
	m.handler.RegisterRoutes(r)
}

// Shutdown cleans up module resources.
func (m *Module) Shutdown() error {
	return nil
}
