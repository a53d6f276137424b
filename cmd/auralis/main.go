package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/klyne/auralis/internal/modules/artwork"
	_ "github.com/klyne/auralis/internal/modules/discovery"
	_ "github.com/klyne/auralis/internal/modules/library"
	_ "github.com/klyne/auralis/internal/modules/player"
	_ "github.com/klyne/auralis/internal/modules/status"
	"github.com/klyne/auralis/internal/server"
)

// version is set at build time via ldflags:
// go build -ldflags "-X main.version=1.0.0" ./cmd/auralis
var version = "dev"

func main() {
	// Configure JSON logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	slog.Info("starting auralis", "version", version)

	// Load configuration
	cfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Create and configure server
	srv := server.NewServer(cfg)
	srv.LoadModules()

	// Start server
	if err := srv.Start(); err != nil {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("received termination signal, shutting down")
	if err := srv.Stop(); err != nil {
		slog.Error("failed to shutdown", "error", err)
	}

	slog.Info("completed server shutdown")
	os.Exit(0)
}
