package infrastructure

import (
	"context"
	"sync"
	"time"

	"github.com/klyne/auralis/internal/modules/player/application/ports"
	"github.com/klyne/auralis/internal/modules/player/domain"
)

// Compile-time check that RemoteEngine implements ports.PlaybackEngine.
var _ ports.PlaybackEngine = (*RemoteEngine)(nil)

// RemoteEngine drives a playback widget running outside this process.
// Commands go out as engine command events on the bus (delivered to the
// widget over the event stream); the widget reports its state and
// position back through the engine callback endpoints, which land in
// ReportState and ReportProgress.
type RemoteEngine struct {
	publisher ports.EventPublisher

	mu         sync.RWMutex
	state      domain.EngineState
	elapsed    float64
	duration   float64
	reportedAt time.Time
}

// NewRemoteEngine creates a new RemoteEngine publishing commands to the
// given publisher.
func NewRemoteEngine(publisher ports.EventPublisher) *RemoteEngine {
	return &RemoteEngine{
		publisher: publisher,
		state:     domain.EngineUnstarted,
	}
}

// Load instructs the widget to load and play the given track.
func (e *RemoteEngine) Load(_ context.Context, track domain.Track) error {
	e.mu.Lock()
	e.elapsed = 0
	e.duration = 0
	e.reportedAt = time.Time{}
	e.mu.Unlock()

	e.publisher.PublishEngineCommand(domain.EngineCommandEvent{
		Command: domain.CommandLoad,
		TrackID: track.ID,
	})
	return nil
}

// Play instructs the widget to resume playback.
func (e *RemoteEngine) Play(_ context.Context) error {
	e.publisher.PublishEngineCommand(domain.EngineCommandEvent{Command: domain.CommandPlay})
	return nil
}

// Pause instructs the widget to pause playback.
func (e *RemoteEngine) Pause(_ context.Context) error {
	e.publisher.PublishEngineCommand(domain.EngineCommandEvent{Command: domain.CommandPause})
	return nil
}

// SeekTo instructs the widget to move to the given offset in seconds.
func (e *RemoteEngine) SeekTo(_ context.Context, seconds float64) error {
	e.mu.Lock()
	e.elapsed = seconds
	e.reportedAt = time.Now()
	e.mu.Unlock()

	e.publisher.PublishEngineCommand(domain.EngineCommandEvent{
		Command: domain.CommandSeek,
		Seconds: seconds,
	})
	return nil
}

// Position returns the last reported playback offset, extrapolated by
// wall-clock time while the widget reports a playing state.
func (e *RemoteEngine) Position(_ context.Context) (float64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	elapsed := e.elapsed
	if e.state.IsPlaying() && !e.reportedAt.IsZero() {
		elapsed += time.Since(e.reportedAt).Seconds()
		if e.duration > 0 && elapsed > e.duration {
			elapsed = e.duration
		}
	}
	return elapsed, nil
}

// Duration returns the last reported track length, or 0 if unknown.
func (e *RemoteEngine) Duration(_ context.Context) (float64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.duration, nil
}

// SetVolume instructs the widget to set its volume.
func (e *RemoteEngine) SetVolume(_ context.Context, percent int) error {
	e.publisher.PublishEngineCommand(domain.EngineCommandEvent{
		Command: domain.CommandSetVolume,
		Volume:  percent,
	})
	return nil
}

// ReportState records a state change reported by the widget.
func (e *RemoteEngine) ReportState(state domain.EngineState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = state
}

// ReportProgress records a position report from the widget.
func (e *RemoteEngine) ReportProgress(elapsed, duration float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.elapsed = elapsed
	e.duration = duration
	e.reportedAt = time.Now()
}

// State returns the last state reported by the widget.
func (e *RemoteEngine) State() domain.EngineState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}
