package usecases

import (
	"context"
	"math/rand/v2"
	"strconv"
	"sync"

	"github.com/klyne/auralis/internal/modules/player/domain"
)

func mockTrack(id string) domain.Track {
	return domain.Track{
		ID:       id,
		Title:    "Track " + id,
		Author:   "Artist",
		Duration: "3:00",
	}
}

func mockTracks(n int) []domain.Track {
	tracks := make([]domain.Track, n)
	for i := range tracks {
		tracks[i] = mockTrack("track-" + strconv.Itoa(i))
	}
	return tracks
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(42, 42))
}

type mockEngine struct {
	loaded   []domain.Track
	played   int
	paused   int
	seeks    []float64
	volumes  []int
	position float64
	duration float64

	loadErr     error
	playErr     error
	pauseErr    error
	seekErr     error
	positionErr error
	durationErr error
	volumeErr   error
}

func (m *mockEngine) Load(_ context.Context, track domain.Track) error {
	if m.loadErr != nil {
		return m.loadErr
	}
	m.loaded = append(m.loaded, track)
	return nil
}

func (m *mockEngine) Play(_ context.Context) error {
	if m.playErr != nil {
		return m.playErr
	}
	m.played++
	return nil
}

func (m *mockEngine) Pause(_ context.Context) error {
	if m.pauseErr != nil {
		return m.pauseErr
	}
	m.paused++
	return nil
}

func (m *mockEngine) SeekTo(_ context.Context, seconds float64) error {
	if m.seekErr != nil {
		return m.seekErr
	}
	m.seeks = append(m.seeks, seconds)
	return nil
}

func (m *mockEngine) Position(_ context.Context) (float64, error) {
	return m.position, m.positionErr
}

func (m *mockEngine) Duration(_ context.Context) (float64, error) {
	return m.duration, m.durationErr
}

func (m *mockEngine) SetVolume(_ context.Context, percent int) error {
	if m.volumeErr != nil {
		return m.volumeErr
	}
	m.volumes = append(m.volumes, percent)
	return nil
}

// mockEventPublisher records published events. Guarded by a mutex so
// tests can observe events published from the progress goroutine.
type mockEventPublisher struct {
	mu              sync.Mutex
	queueChanged    []domain.QueueChangedEvent
	trackStarted    []domain.TrackStartedEvent
	stateChanged    []domain.StateChangedEvent
	progressUpdated []domain.ProgressUpdatedEvent
	engineErrors    []domain.EngineErrorEvent
	engineCommands  []domain.EngineCommandEvent
}

func (m *mockEventPublisher) PublishQueueChanged(event domain.QueueChangedEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queueChanged = append(m.queueChanged, event)
}

func (m *mockEventPublisher) PublishTrackStarted(event domain.TrackStartedEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trackStarted = append(m.trackStarted, event)
}

func (m *mockEventPublisher) PublishStateChanged(event domain.StateChangedEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stateChanged = append(m.stateChanged, event)
}

func (m *mockEventPublisher) PublishProgressUpdated(event domain.ProgressUpdatedEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progressUpdated = append(m.progressUpdated, event)
}

func (m *mockEventPublisher) PublishEngineError(event domain.EngineErrorEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.engineErrors = append(m.engineErrors, event)
}

func (m *mockEventPublisher) PublishEngineCommand(event domain.EngineCommandEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.engineCommands = append(m.engineCommands, event)
}

func (m *mockEventPublisher) progressCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.progressUpdated)
}

func newTestTransport() (*TransportService, *mockEngine, *mockEventPublisher) {
	engine := &mockEngine{}
	publisher := &mockEventPublisher{}
	service := NewTransportService(engine, publisher, testRNG())
	return service, engine, publisher
}
