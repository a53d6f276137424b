package application

import (
	"testing"
	"time"
)

func TestExecuteReportsUptime(t *testing.T) {
	interactor := NewStatusInteractor()
	interactor.startedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	interactor.now = func() time.Time {
		return interactor.startedAt.Add(5 * time.Second)
	}

	report := interactor.Execute()

	if report.Status != "ok" {
		t.Errorf("expected status ok, got %q", report.Status)
	}
	if report.Uptime != "5s" {
		t.Errorf("expected uptime 5s, got %q", report.Uptime)
	}
}
