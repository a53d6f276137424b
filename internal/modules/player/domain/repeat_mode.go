package domain

// RepeatMode represents the repeat mode for queue playback.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota // Default: stop at the end of the queue
	RepeatAll                   // Wrap around to the first track
	RepeatOne                   // Replay the current track indefinitely
)

// String returns a human-readable representation of the repeat mode.
func (m RepeatMode) String() string {
	switch m {
	case RepeatAll:
		return "all"
	case RepeatOne:
		return "one"
	default:
		return "off"
	}
}

// Cycle returns the next mode in the off -> all -> one -> off cycle.
func (m RepeatMode) Cycle() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatOff
	}
}

// ParseRepeatMode converts a string to a RepeatMode.
func ParseRepeatMode(s string) RepeatMode {
	switch s {
	case "all":
		return RepeatAll
	case "one":
		return RepeatOne
	default:
		return RepeatOff
	}
}
