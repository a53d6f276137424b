package domain

import (
	"math"
	"strconv"
)

// Track represents a playable item as returned by the search gateway.
// Identity is the ID field only; everything else is opaque display data.
type Track struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Author    string `json:"author"`
	Duration  string `json:"duration"`
	Views     int64  `json:"views"`
}

// IsValid returns true if the track has the minimum required fields.
func (t *Track) IsValid() bool {
	return t.ID != ""
}

// FormatTime renders a position in seconds as m:ss, with minutes unpadded
// and seconds zero-padded. Zero, negative and non-finite inputs render as
// "0:00".
func FormatTime(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "0:00"
	}

	total := int(seconds)
	m := total / 60
	s := total % 60

	out := strconv.Itoa(m) + ":"
	if s < 10 {
		out += "0"
	}
	return out + strconv.Itoa(s)
}
