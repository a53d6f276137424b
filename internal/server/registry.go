package server

import "sync"

// Registry tracks modules by name, keeping registration order for
// deterministic startup and shutdown.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	byName map[string]Module
}

// NewRegistry creates an empty module registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Module),
	}
}

// Register adds a module. Registering a second module under the same
// name replaces the first but keeps its original position, so a test
// can swap a module without disturbing startup order.
func (r *Registry) Register(m Module) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := m.Name()
	if _, known := r.byName[name]; !known {
		r.order = append(r.order, name)
	}
	r.byName[name] = m
}

// Modules returns the registered modules in registration order. The
// returned slice is a snapshot.
func (r *Registry) Modules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Module, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.byName[name])
	}
	return result
}

// Global registry instance for module self-registration via init()
var globalRegistry = NewRegistry()

// Register adds a module to the global registry.
// This is typically called from module init() functions.
func Register(m Module) {
	globalRegistry.Register(m)
}

// Modules returns all modules from the global registry.
func Modules() []Module {
	return globalRegistry.Modules()
}

// ResetGlobalRegistry resets the global registry.
// This is intended for testing purposes only.
func ResetGlobalRegistry() {
	globalRegistry = NewRegistry()
}
