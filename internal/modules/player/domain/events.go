package domain

// QueueChangedEvent is published whenever the queue contents, order, or
// position change.
type QueueChangedEvent struct {
	Tracks   []Track `json:"tracks"`
	Position int     `json:"position"`
	Shuffled bool    `json:"shuffled"`
}

// TrackStartedEvent is published when playback of a new track begins.
type TrackStartedEvent struct {
	Track    Track `json:"track"`
	Position int   `json:"position"`
}

// StateChangedEvent is published when the engine's playback state or the
// repeat mode changes.
type StateChangedEvent struct {
	State      EngineState `json:"state"`
	RepeatMode string      `json:"repeatMode"`
}

// ProgressUpdatedEvent is published on each progress tick.
type ProgressUpdatedEvent struct {
	Elapsed         float64 `json:"elapsed"`
	Duration        float64 `json:"duration"`
	Percent         float64 `json:"percent"`
	ElapsedDisplay  string  `json:"elapsedDisplay"`
	DurationDisplay string  `json:"durationDisplay"`
}

// EngineErrorEvent is published when the playback engine reports an
// unrecoverable error for the current track.
type EngineErrorEvent struct {
	TrackID string `json:"trackId"`
	Message string `json:"message"`
}

// EngineCommand identifies an instruction sent to a remote playback engine.
type EngineCommand string

const (
	CommandLoad      EngineCommand = "load"
	CommandPlay      EngineCommand = "play"
	CommandPause     EngineCommand = "pause"
	CommandSeek      EngineCommand = "seek"
	CommandSetVolume EngineCommand = "set_volume"
)

// EngineCommandEvent is published to instruct a remote playback engine.
// Only the fields relevant to the command are populated.
type EngineCommandEvent struct {
	Command EngineCommand `json:"command"`
	TrackID string        `json:"trackId,omitempty"`
	Seconds float64       `json:"seconds,omitempty"`
	Volume  int           `json:"volume,omitempty"`
}
