package domain

// EngineState represents the playback engine's reported state.
type EngineState string

const (
	EngineUnstarted EngineState = "unstarted"
	EnginePlaying   EngineState = "playing"
	EnginePaused    EngineState = "paused"
	EngineBuffering EngineState = "buffering"
	EngineEnded     EngineState = "ended"
	EngineError     EngineState = "error"
)

// ParseEngineState converts an engine state name to an EngineState.
// Unknown names map to EngineUnstarted.
func ParseEngineState(s string) EngineState {
	switch EngineState(s) {
	case EnginePlaying, EnginePaused, EngineBuffering, EngineEnded, EngineError:
		return EngineState(s)
	default:
		return EngineUnstarted
	}
}

// IsPlaying returns true if the engine is actively producing audio.
func (s EngineState) IsPlaying() bool {
	return s == EnginePlaying
}
