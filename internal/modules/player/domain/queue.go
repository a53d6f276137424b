package domain

import "math/rand/v2"

// Queue manages the playback order using an index-based model.
// Tracks are never removed on playback; a position cursor advances
// through the list instead, which makes repeat and shuffle cheap.
// A position of -1 means no track is active yet.
type Queue struct {
	tracks   []Track
	position int
	shuffled bool
	backup   []Track
}

// NewQueue creates a new empty Queue with no active track.
func NewQueue() Queue {
	return Queue{
		tracks:   make([]Track, 0),
		position: -1,
	}
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}

// Len returns the total number of tracks in the queue.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// Position returns the current track index, or -1 if no track is active.
func (q *Queue) Position() int {
	return q.position
}

// IsShuffled returns true if the queue is currently in shuffled order.
func (q *Queue) IsShuffled() bool {
	return q.shuffled
}

func (q *Queue) isValidIndex(index int) bool {
	return 0 <= index && index < q.Len()
}

func (q *Queue) isAtLast() bool {
	return q.position >= q.Len()-1
}

// Current returns the track at the current position, or nil if no
// track is active.
func (q *Queue) Current() *Track {
	if !q.isValidIndex(q.position) {
		return nil
	}
	return &q.tracks[q.position]
}

// Tracks returns a copy of all tracks in playback order.
func (q *Queue) Tracks() []Track {
	result := make([]Track, q.Len())
	copy(result, q.tracks)
	return result
}

// IndexOf returns the index of the first track with the given ID, or -1.
func (q *Queue) IndexOf(id string) int {
	for i, t := range q.tracks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Replace swaps the queue contents for a new track list and positions
// the cursor at the given index. The new list starts unshuffled; any
// previous shuffle backup is discarded.
func (q *Queue) Replace(tracks []Track, index int) *Track {
	q.tracks = make([]Track, len(tracks))
	copy(q.tracks, tracks)
	q.shuffled = false
	q.backup = nil

	if !q.isValidIndex(index) {
		q.position = -1
		return nil
	}
	q.position = index
	return &q.tracks[q.position]
}

// AppendUnique adds a track to the end of the queue unless a track with
// the same ID is already present. Returns true if the track was added.
// The current position is unaffected.
func (q *Queue) AppendUnique(track Track) bool {
	if q.IndexOf(track.ID) >= 0 {
		return false
	}
	q.tracks = append(q.tracks, track)
	if q.shuffled {
		q.backup = append(q.backup, track)
	}
	return true
}

// Seek sets the position to the specified index.
// Returns the track at that index, or nil if the index is out of
// bounds, in which case the position is unchanged.
func (q *Queue) Seek(index int) *Track {
	if !q.isValidIndex(index) {
		return nil
	}
	q.position = index
	return &q.tracks[index]
}

// Advance moves to the next track based on repeat mode.
// Returns the new current track, or nil if the queue ended.
//   - RepeatAll: advance, wrap to 0 past the end
//   - otherwise: advance, return nil past the end without moving
//
// RepeatOne is intentionally treated like RepeatOff here: repeating a
// single track is a playback concern (re-seek to zero), not a queue
// traversal.
func (q *Queue) Advance(mode RepeatMode) *Track {
	if q.IsEmpty() || q.position < 0 {
		return nil
	}

	if q.isAtLast() {
		if mode != RepeatAll {
			return nil
		}
		q.position = 0
	} else {
		q.position++
	}

	return &q.tracks[q.position]
}

// Retreat moves to the previous track, wrapping to the last track from
// the front. Returns the new current track, or nil if no track is
// active.
func (q *Queue) Retreat() *Track {
	if q.IsEmpty() || q.position < 0 {
		return nil
	}

	if q.position == 0 {
		q.position = q.Len() - 1
	} else {
		q.position--
	}

	return &q.tracks[q.position]
}

// Shuffle reorders the queue so the current track sits at index 0
// followed by the remaining tracks in random order, stashing the
// original order for Unshuffle. No-op on an empty queue or when no
// track is active.
func (q *Queue) Shuffle(rng *rand.Rand) {
	if q.IsEmpty() {
		return
	}

	q.backup = make([]Track, q.Len())
	copy(q.backup, q.tracks)

	// With nothing playing the whole queue is permuted in place.
	current := q.Current()
	if current == nil {
		rng.Shuffle(len(q.tracks), func(i, j int) {
			q.tracks[i], q.tracks[j] = q.tracks[j], q.tracks[i]
		})
		q.shuffled = true
		return
	}

	rest := make([]Track, 0, q.Len()-1)
	for i, t := range q.tracks {
		if i != q.position {
			rest = append(rest, t)
		}
	}
	rng.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})

	q.tracks = append([]Track{*current}, rest...)
	q.position = 0
	q.shuffled = true
}

// Unshuffle restores the original order captured by Shuffle and
// relocates the cursor to the current track's position in that order.
// No-op if the queue is not shuffled.
func (q *Queue) Unshuffle() {
	if !q.shuffled {
		return
	}

	currentID := ""
	if current := q.Current(); current != nil {
		currentID = current.ID
	}

	q.tracks = q.backup
	q.backup = nil
	q.shuffled = false

	q.position = q.IndexOf(currentID)
}

// Clear removes all tracks and resets the queue to its initial state.
func (q *Queue) Clear() {
	q.tracks = make([]Track, 0)
	q.position = -1
	q.shuffled = false
	q.backup = nil
}
