package usecases

import "errors"

// Domain errors for the library module.
var (
	// ErrNoActiveTrack is returned when a like or playlist-add has no
	// track to act on.
	ErrNoActiveTrack = errors.New("no track is currently active")

	// ErrDuplicateName is returned when creating a playlist whose name
	// is already taken.
	ErrDuplicateName = errors.New("a playlist with that name already exists")

	// ErrNoSuchPlaylist is returned when the named playlist does not exist.
	ErrNoSuchPlaylist = errors.New("no such playlist")

	// ErrDuplicateTrack is returned when a track is already in the playlist.
	ErrDuplicateTrack = errors.New("track is already in the playlist")

	// ErrEmptyName is returned when a playlist name is blank.
	ErrEmptyName = errors.New("playlist name must not be empty")
)
