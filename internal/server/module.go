package server

import "github.com/gorilla/mux"

// ModuleDependencies provides dependencies that modules may need during initialization.
type ModuleDependencies struct {
	Config *Config
}

// Module defines the interface that all server modules must implement.
type Module interface {
	// Name returns the unique identifier for this module.
	Name() string

	// Init initializes the module with the provided dependencies.
	Init(deps ModuleDependencies) error

	// RegisterRoutes mounts the module's HTTP handlers on the router.
	// Called after Init, before the server starts listening.
	RegisterRoutes(r *mux.Router)

	// Shutdown gracefully shuts down the module.
	Shutdown() error
}

// ConfigurableModule is an optional interface for modules that need configuration.
// Modules implementing this interface will have LoadConfig called before Init.
type ConfigurableModule interface {
	// LoadConfig loads and validates module-specific configuration.
	// Called before Init() and before the HTTP listener is opened.
	// Should return an error if required configuration is missing or invalid.
	LoadConfig() error
}
