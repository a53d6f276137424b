package application

import (
	"time"

	"github.com/klyne/auralis/internal/modules/status/domain"
)

// StatusInteractor handles the status use case.
type StatusInteractor struct {
	startedAt time.Time
	now       func() time.Time
}

// NewStatusInteractor creates a StatusInteractor anchored at the current time.
func NewStatusInteractor() *StatusInteractor {
	return &StatusInteractor{
		startedAt: time.Now(),
		now:       time.Now,
	}
}

// Execute returns the current health report.
func (s *StatusInteractor) Execute() *domain.Report {
	return domain.NewReport(s.startedAt, s.now())
}
