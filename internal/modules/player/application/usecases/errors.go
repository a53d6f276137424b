package usecases

import "errors"

// Domain errors for the player module.
var (
	// ErrQueueEmpty is returned when an operation requires a non-empty queue.
	ErrQueueEmpty = errors.New("the queue is empty")

	// ErrNoActiveTrack is returned when an operation requires a current track.
	ErrNoActiveTrack = errors.New("no track is currently active")

	// ErrInvalidPosition is returned when an invalid queue position is specified.
	ErrInvalidPosition = errors.New("invalid queue position")

	// ErrInvalidSeek is returned when a seek target is negative.
	ErrInvalidSeek = errors.New("seek position must not be negative")

	// ErrInvalidVolume is returned when a volume outside 0-100 is specified.
	ErrInvalidVolume = errors.New("volume must be between 0 and 100")

	// ErrInvalidTrack is returned when a track is missing required fields.
	ErrInvalidTrack = errors.New("track is missing an ID")
)
