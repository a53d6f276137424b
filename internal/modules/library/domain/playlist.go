package domain

import (
	player "github.com/klyne/auralis/internal/modules/player/domain"
)

// Track is the playable item stored in the library. It is the same
// value the player queues, so saved tracks round-trip into playback
// without translation.
type Track = player.Track

// Playlist is a named, ordered collection of tracks. Names are unique
// across the library and act as the playlist's identity.
type Playlist struct {
	Name   string  `json:"name"`
	Tracks []Track `json:"tracks"`
}

// ContainsTrack returns true if a track with the given ID is in the playlist.
func (p *Playlist) ContainsTrack(id string) bool {
	for _, track := range p.Tracks {
		if track.ID == id {
			return true
		}
	}
	return false
}
