package ports

import (
	"context"

	"github.com/klyne/auralis/internal/modules/player/domain"
)

// PlaybackEngine defines the interface for playback engine operations.
// Implementations drive an actual audio sink, either a remote widget fed
// over the event stream or a local mpv process.
type PlaybackEngine interface {
	// Load prepares the given track for playback, replacing whatever is
	// currently loaded. Playback starts automatically once ready.
	Load(ctx context.Context, track domain.Track) error

	// Play resumes playback of the loaded track.
	Play(ctx context.Context) error

	// Pause pauses playback without unloading the track.
	Pause(ctx context.Context) error

	// SeekTo moves the playback position to the given offset in seconds.
	SeekTo(ctx context.Context, seconds float64) error

	// Position returns the current playback offset in seconds.
	Position(ctx context.Context) (float64, error)

	// Duration returns the loaded track's length in seconds, or 0 if
	// unknown.
	Duration(ctx context.Context) (float64, error)

	// SetVolume sets the playback volume as a 0-100 percentage.
	SetVolume(ctx context.Context, percent int) error
}
