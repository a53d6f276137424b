package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Server manages the HTTP lifecycle and module coordination.
type Server struct {
	config  *Config
	router  *mux.Router
	httpSrv *http.Server
	modules []Module
}

// NewServer creates a new Server instance with the given configuration.
func NewServer(cfg *Config) *Server {
	return &Server{
		config:  cfg,
		router:  mux.NewRouter(),
		modules: make([]Module, 0),
	}
}

// LoadModules loads modules from the global registry.
func (s *Server) LoadModules() {
	s.modules = Modules()
}

// Router returns the root router. Exposed for tests.
func (s *Server) Router() *mux.Router {
	return s.router
}

// Start initializes all modules, mounts their routes and opens the listener.
func (s *Server) Start() error {
	if err := s.initModules(); err != nil {
		return fmt.Errorf("failed to initialize modules: %w", err)
	}

	s.registerRoutes()

	handler := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{}),
	)(handlers.CompressHandler(
		handlers.CORS(
			handlers.AllowedOrigins(s.config.AllowedOrigins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		)(s.router),
	))

	s.httpSrv = &http.Server{
		Addr:              s.config.ListenAddress,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("serving HTTP", "address", s.config.ListenAddress)
		if err := s.httpSrv.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server stopped", "error", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP listener and all modules.
func (s *Server) Stop() error {
	var firstErr error

	if s.httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}

	for _, mod := range s.modules {
		if err := mod.Shutdown(); err != nil {
			slog.Warn("failed to shutdown module", "module", mod.Name(), "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

// initModules initializes all loaded modules.
func (s *Server) initModules() error {
	deps := ModuleDependencies{
		Config: s.config,
	}

	for _, mod := range s.modules {
		if cm, ok := mod.(ConfigurableModule); ok {
			if err := cm.LoadConfig(); err != nil {
				return fmt.Errorf("failed to load %s module config: %w", mod.Name(), err)
			}
		}
		if err := mod.Init(deps); err != nil {
			return fmt.Errorf("failed to initialize %s module: %w", mod.Name(), err)
		}
		slog.Debug("initialized module", "module", mod.Name())
	}

	moduleNames := make([]string, len(s.modules))
	for i, mod := range s.modules {
		moduleNames[i] = mod.Name()
	}
	slog.Info("initialized modules", "modules", moduleNames)

	return nil
}

// registerRoutes mounts every module's handlers on the root router.
func (s *Server) registerRoutes() {
	for _, mod := range s.modules {
		mod.RegisterRoutes(s.router)
		slog.Debug("registered routes", "module", mod.Name())
	}
}

// recoveryLogger routes gorilla's panic logging through slog.
type recoveryLogger struct{}

func (recoveryLogger) Println(v ...any) {
	slog.Error("recovered from panic in HTTP handler", "panic", fmt.Sprint(v...))
}
