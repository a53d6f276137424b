package domain

import "time"

// Report describes the server's current health.
type Report struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"startedAt"`
	Uptime    string    `json:"uptime"`
}

// NewReport creates a Report for a server started at the given time.
func NewReport(startedAt, now time.Time) *Report {
	return &Report{
		Status:    "ok",
		StartedAt: startedAt,
		Uptime:    now.Sub(startedAt).Truncate(time.Second).String(),
	}
}
