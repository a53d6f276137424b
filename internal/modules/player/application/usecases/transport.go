package usecases

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/klyne/auralis/internal/modules/player/application/ports"
	"github.com/klyne/auralis/internal/modules/player/domain"
)

// restartThresholdSeconds is how far into a track the previous action
// restarts it instead of moving back through the queue.
const restartThresholdSeconds = 3.0

// StateSnapshot is a point-in-time view of the transport state.
type StateSnapshot struct {
	Tracks      []domain.Track     `json:"tracks"`
	Position    int                `json:"position"`
	Current     *domain.Track      `json:"current"`
	Shuffled    bool               `json:"shuffled"`
	RepeatMode  string             `json:"repeatMode"`
	EngineState domain.EngineState `json:"engineState"`
	Elapsed     float64            `json:"elapsed"`
	Duration    float64            `json:"duration"`
	Volume      int                `json:"volume"`
}

// TransportService coordinates the queue, the repeat and shuffle modes,
// and the playback engine. All public methods are safe for concurrent
// use; a single mutex serializes every transport mutation.
type TransportService struct {
	mu          sync.Mutex
	queue       domain.Queue
	repeatMode  domain.RepeatMode
	engineState domain.EngineState
	volume      int
	engine      ports.PlaybackEngine
	publisher   ports.EventPublisher
	rng         *rand.Rand
}

// NewTransportService creates a new TransportService.
func NewTransportService(
	engine ports.PlaybackEngine,
	publisher ports.EventPublisher,
	rng *rand.Rand,
) *TransportService {
	return &TransportService{
		queue:       domain.NewQueue(),
		engineState: domain.EngineUnstarted,
		volume:      100,
		engine:      engine,
		publisher:   publisher,
		rng:         rng,
	}
}

// State returns a snapshot of the current transport state. Playback
// position and duration are read from the engine and left at zero when
// the engine cannot report them.
func (s *TransportService) State(ctx context.Context) StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshotLocked()
	if snapshot.Current != nil {
		if elapsed, err := s.engine.Position(ctx); err == nil {
			snapshot.Elapsed = elapsed
		}
		if duration, err := s.engine.Duration(ctx); err == nil {
			snapshot.Duration = duration
		}
	}
	return snapshot
}

func (s *TransportService) snapshotLocked() StateSnapshot {
	return StateSnapshot{
		Tracks:      s.queue.Tracks(),
		Position:    s.queue.Position(),
		Current:     s.queue.Current(),
		Shuffled:    s.queue.IsShuffled(),
		RepeatMode:  s.repeatMode.String(),
		EngineState: s.engineState,
		Volume:      s.volume,
	}
}

// PlayAll replaces the queue with the given tracks and starts playback
// at the given index. A negative index replaces the queue without
// starting anything, for browsing. The new queue starts unshuffled.
func (s *TransportService) PlayAll(ctx context.Context, tracks []domain.Track, index int) error {
	if len(tracks) == 0 {
		return ErrQueueEmpty
	}
	if index >= len(tracks) {
		return ErrInvalidPosition
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	track := s.queue.Replace(tracks, index)
	s.publishQueueChangedLocked()
	if track == nil {
		return nil
	}
	return s.startTrackLocked(ctx, *track)
}

// Enqueue appends tracks to the end of the queue, skipping any whose
// ID is already present. Order and playback position are untouched, so
// feed sections can be merged mid-playback. Returns how many tracks
// were added.
func (s *TransportService) Enqueue(ctx context.Context, tracks []domain.Track) (int, error) {
	for _, track := range tracks {
		if !track.IsValid() {
			return 0, ErrInvalidTrack
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, track := range tracks {
		if s.queue.AppendUnique(track) {
			added++
		}
	}

	if added > 0 {
		s.publishQueueChangedLocked()
	}
	return added, nil
}

// PlayTrack plays a single track immediately. A track already in the
// queue is jumped to in place; anything else is appended first, so the
// queue keeps a record of everything played.
func (s *TransportService) PlayTrack(ctx context.Context, track domain.Track) error {
	if !track.IsValid() {
		return ErrInvalidTrack
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.queue.IndexOf(track.ID)
	if index < 0 {
		s.queue.AppendUnique(track)
		index = s.queue.IndexOf(track.ID)
	}

	started := s.queue.Seek(index)
	if started == nil {
		return ErrInvalidPosition
	}

	s.publishQueueChangedLocked()
	return s.startTrackLocked(ctx, *started)
}

// PlayAt jumps to the track at the given queue index and plays it.
func (s *TransportService) PlayAt(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	track := s.queue.Seek(index)
	if track == nil {
		return ErrInvalidPosition
	}

	s.publishQueueChangedLocked()
	return s.startTrackLocked(ctx, *track)
}

// Next advances to the next track. With repeat-all the queue wraps
// around from the last track; otherwise the current track keeps its
// position and nothing changes.
func (s *TransportService) Next(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queue.IsEmpty() {
		return ErrQueueEmpty
	}

	track := s.queue.Advance(s.repeatMode)
	if track == nil {
		slog.Debug("at end of queue, not advancing", "repeat", s.repeatMode.String())
		return nil
	}

	s.publishQueueChangedLocked()
	return s.startTrackLocked(ctx, *track)
}

// Previous restarts the current track when more than a few seconds have
// elapsed, and otherwise moves back through the queue, wrapping from
// the first track to the last.
func (s *TransportService) Previous(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queue.Current() == nil {
		return ErrNoActiveTrack
	}

	elapsed, err := s.engine.Position(ctx)
	if err != nil {
		slog.Warn("failed to read engine position, treating as start of track", "error", err)
		elapsed = 0
	}

	if elapsed > restartThresholdSeconds {
		return s.engine.SeekTo(ctx, 0)
	}

	track := s.queue.Retreat()
	if track == nil {
		return ErrNoActiveTrack
	}

	s.publishQueueChangedLocked()
	return s.startTrackLocked(ctx, *track)
}

// Pause pauses the playback engine.
func (s *TransportService) Pause(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queue.Current() == nil {
		return ErrNoActiveTrack
	}
	return s.engine.Pause(ctx)
}

// Resume resumes the playback engine.
func (s *TransportService) Resume(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queue.Current() == nil {
		return ErrNoActiveTrack
	}
	return s.engine.Play(ctx)
}

// TogglePause pauses a playing engine and resumes a paused one.
// Returns true when the engine was asked to play.
func (s *TransportService) TogglePause(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queue.Current() == nil {
		return false, ErrNoActiveTrack
	}

	if s.engineState.IsPlaying() {
		return false, s.engine.Pause(ctx)
	}
	return true, s.engine.Play(ctx)
}

// SeekTo moves the playback position of the current track.
func (s *TransportService) SeekTo(ctx context.Context, seconds float64) error {
	if seconds < 0 {
		return ErrInvalidSeek
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queue.Current() == nil {
		return ErrNoActiveTrack
	}
	return s.engine.SeekTo(ctx, seconds)
}

// SetVolume sets the engine volume as a 0-100 percentage.
func (s *TransportService) SetVolume(ctx context.Context, percent int) error {
	if percent < 0 || percent > 100 {
		return ErrInvalidVolume
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.SetVolume(ctx, percent); err != nil {
		return err
	}
	s.volume = percent
	return nil
}

// ToggleShuffle switches the queue between shuffled and original order.
// Shuffling keeps the current track first; unshuffling restores the
// stashed order and relocates the current track within it. Returns the
// new shuffle state.
func (s *TransportService) ToggleShuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queue.IsShuffled() {
		s.queue.Unshuffle()
	} else {
		s.queue.Shuffle(s.rng)
	}

	s.publishQueueChangedLocked()
	return s.queue.IsShuffled()
}

// CycleRepeatMode advances the repeat mode through off, all, one and
// back to off. Returns the new mode.
func (s *TransportService) CycleRepeatMode() domain.RepeatMode {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.repeatMode = s.repeatMode.Cycle()
	s.publishStateChangedLocked()
	return s.repeatMode
}

// RepeatMode returns the current repeat mode.
func (s *TransportService) RepeatMode() domain.RepeatMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repeatMode
}

// HandleEngineState processes a state report from the playback engine.
// An ended report either replays the current track (repeat-one) or
// advances the queue like Next.
func (s *TransportService) HandleEngineState(ctx context.Context, state domain.EngineState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engineState = state
	s.publishStateChangedLocked()

	if state != domain.EngineEnded {
		return nil
	}

	if s.repeatMode == domain.RepeatOne {
		if err := s.engine.SeekTo(ctx, 0); err != nil {
			return err
		}
		return s.engine.Play(ctx)
	}

	track := s.queue.Advance(s.repeatMode)
	if track == nil {
		slog.Debug("queue finished", "repeat", s.repeatMode.String())
		return nil
	}

	s.publishQueueChangedLocked()
	return s.startTrackLocked(ctx, *track)
}

// HandleEngineError processes an error report from the playback engine.
// The queue position is left untouched so the user can retry the track.
func (s *TransportService) HandleEngineError(ctx context.Context, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trackID := ""
	if current := s.queue.Current(); current != nil {
		trackID = current.ID
	}
	slog.Warn("playback engine reported an error", "track_id", trackID, "message", message)

	s.engineState = domain.EngineError
	s.publishStateChangedLocked()
	s.publisher.PublishEngineError(domain.EngineErrorEvent{
		TrackID: trackID,
		Message: message,
	})
	return nil
}

// Clear empties the queue and resets playback state.
func (s *TransportService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.Pause(ctx); err != nil {
		slog.Warn("failed to pause engine while clearing queue", "error", err)
	}

	s.queue.Clear()
	s.engineState = domain.EngineUnstarted
	s.publishQueueChangedLocked()
	s.publishStateChangedLocked()
	return nil
}

func (s *TransportService) startTrackLocked(ctx context.Context, track domain.Track) error {
	if err := s.engine.Load(ctx, track); err != nil {
		return err
	}

	// The engine was told to play, so assume it did until it reports
	// otherwise. Without this, a toggle issued before the first state
	// report would resume an already-playing engine.
	s.engineState = domain.EnginePlaying
	s.publishStateChangedLocked()

	s.publisher.PublishTrackStarted(domain.TrackStartedEvent{
		Track:    track,
		Position: s.queue.Position(),
	})
	return nil
}

func (s *TransportService) publishQueueChangedLocked() {
	s.publisher.PublishQueueChanged(domain.QueueChangedEvent{
		Tracks:   s.queue.Tracks(),
		Position: s.queue.Position(),
		Shuffled: s.queue.IsShuffled(),
	})
}

func (s *TransportService) publishStateChangedLocked() {
	s.publisher.PublishStateChanged(domain.StateChangedEvent{
		State:      s.engineState,
		RepeatMode: s.repeatMode.String(),
	})
}
