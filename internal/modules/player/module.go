package player

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/caarlos0/env/v11"
	"github.com/gorilla/mux"

	"github.com/klyne/auralis/internal/modules/player/application/ports"
	"github.com/klyne/auralis/internal/modules/player/application/usecases"
	"github.com/klyne/auralis/internal/modules/player/domain"
	"github.com/klyne/auralis/internal/modules/player/infrastructure"
	"github.com/klyne/auralis/internal/modules/player/presentation/httpapi"
	"github.com/klyne/auralis/internal/server"
)

func init() {
	server.Register(&Module{})
}

// Compile-time interface checks.
var _ server.ConfigurableModule = (*Module)(nil)

// Module provides queue and playback control over HTTP.
type Module struct {
	config    *Config
	eventBus  *infrastructure.ChannelEventBus
	transport *usecases.TransportService
	progress  *usecases.ProgressService
	handler   *httpapi.Handler
	mpv       *infrastructure.MPVEngine
	mpvCancel context.CancelFunc
}

// Name returns the module name.
func (m *Module) Name() string {
	return "player"
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

// Init initializes the module.
func (m *Module) Init(deps server.ModuleDependencies) error {
	if m.config == nil {
		m.config = &Config{Engine: "remote"}
	}

	m.eventBus = infrastructure.NewChannelEventBus(m.config.EventBufferSize)

	var (
		engine   ports.PlaybackEngine
		reporter httpapi.EngineReporter
	)
	switch m.config.Engine {
	case "remote", "":
		remote := infrastructure.NewRemoteEngine(m.eventBus)
		engine = remote
		reporter = remote
	case "mpv":
		m.mpv = infrastructure.NewMPVEngine(m.config.MPVSocket)
		engine = m.mpv
	default:
		return fmt.Errorf("unknown playback engine %q", m.config.Engine)
	}

	m.transport = usecases.NewTransportService(engine, m.eventBus, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	m.progress = usecases.NewProgressService(engine, m.eventBus, usecases.DefaultProgressInterval)

	// A local mpv has no browser posting state reports, so its IPC
	// event stream feeds the transport instead. Track-end advances and
	// pause tracking depend on it.
	if m.mpv != nil {
		ctx, cancel := context.WithCancel(context.Background())
		m.mpvCancel = cancel
		go m.mpv.ObserveState(ctx, func(ctx context.Context, state domain.EngineState) {
			var err error
			if state == domain.EngineError {
				err = m.transport.HandleEngineError(ctx, "mpv reported a playback error")
			} else {
				err = m.transport.HandleEngineState(ctx, state)
			}
			if err != nil {
				slog.Warn("failed to apply engine state report", "state", state, "error", err)
			}
		})
	}

	stream := httpapi.NewSSEHub(m.eventBus)
	stream.SetSnapshot(func(ctx context.Context) any {
		return m.transport.State(ctx)
	})
	m.handler = httpapi.NewHandler(m.transport, reporter, stream)

	// Progress polling follows playback: start when a track starts or
	// resumes, stop when playback pauses, ends, or fails.
	m.eventBus.OnTrackStarted(func(_ context.Context, _ domain.TrackStartedEvent) {
		m.progress.Start()
	})
	m.eventBus.OnStateChanged(func(_ context.Context, event domain.StateChangedEvent) {
		switch event.State {
		case domain.EnginePlaying:
			m.progress.Start()
		case domain.EnginePaused, domain.EngineEnded, domain.EngineError, domain.EngineUnstarted:
			m.progress.Stop()
		}
	})

	slog.Info("player module initialized", "engine", m.config.Engine)
	return nil
}

// RegisterRoutes attaches the module's HTTP endpoints.
func (m *Module) RegisterRoutes(r *mux.Router) {
	m.handler.RegisterRoutes(r)
}

// Shutdown stops background workers and tears down the engine.
func (m *Module) Shutdown() error {
	if m.progress != nil {
		m.progress.Stop()
	}
	if m.mpvCancel != nil {
		m.mpvCancel()
	}
	if m.eventBus != nil {
		m.eventBus.Close()
	}
	if m.mpv != nil {
		return m.mpv.Close()
	}
	return nil
}
