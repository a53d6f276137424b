package usecases

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/klyne/auralis/internal/modules/player/application/ports"
	"github.com/klyne/auralis/internal/modules/player/domain"
)

// DefaultProgressInterval is how often progress updates are published
// while a track is playing.
const DefaultProgressInterval = time.Second

// ProgressService polls the playback engine for its position while a
// track is playing and publishes progress events. At most one polling
// goroutine runs at a time; starting while running restarts the loop.
type ProgressService struct {
	engine    ports.PlaybackEngine
	publisher ports.EventPublisher
	interval  time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewProgressService creates a new ProgressService.
func NewProgressService(
	engine ports.PlaybackEngine,
	publisher ports.EventPublisher,
	interval time.Duration,
) *ProgressService {
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	return &ProgressService{
		engine:    engine,
		publisher: publisher,
		interval:  interval,
	}
}

// Start begins polling the engine. Any previous polling loop is
// cancelled first, so repeated track starts never stack timers.
func (p *ProgressService) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	go p.run(ctx)
}

// Stop cancels the polling loop if one is running.
func (p *ProgressService) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *ProgressService) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.publishTick(ctx)
		}
	}
}

func (p *ProgressService) publishTick(ctx context.Context) {
	elapsed, err := p.engine.Position(ctx)
	if err != nil {
		slog.Debug("failed to read engine position", "error", err)
		return
	}
	duration, err := p.engine.Duration(ctx)
	if err != nil {
		slog.Debug("failed to read engine duration", "error", err)
		return
	}

	// Percent stays zero when the engine has not reported a duration yet.
	percent := 0.0
	if duration > 0 {
		percent = min(elapsed/duration*100, 100)
	}

	p.publisher.PublishProgressUpdated(domain.ProgressUpdatedEvent{
		Elapsed:         elapsed,
		Duration:        duration,
		Percent:         percent,
		ElapsedDisplay:  domain.FormatTime(elapsed),
		DurationDisplay: domain.FormatTime(duration),
	})
}
