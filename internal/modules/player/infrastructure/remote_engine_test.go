package infrastructure

import (
	"context"
	"testing"

	"github.com/klyne/auralis/internal/modules/player/domain"
)

// capturingPublisher records engine commands synchronously.
type capturingPublisher struct {
	commands []domain.EngineCommandEvent
}

func (p *capturingPublisher) PublishQueueChanged(domain.QueueChangedEvent)       {}
func (p *capturingPublisher) PublishTrackStarted(domain.TrackStartedEvent)       {}
func (p *capturingPublisher) PublishStateChanged(domain.StateChangedEvent)       {}
func (p *capturingPublisher) PublishProgressUpdated(domain.ProgressUpdatedEvent) {}
func (p *capturingPublisher) PublishEngineError(domain.EngineErrorEvent)         {}

func (p *capturingPublisher) PublishEngineCommand(event domain.EngineCommandEvent) {
	p.commands = append(p.commands, event)
}

func TestRemoteEngine_Commands(t *testing.T) {
	publisher := &capturingPublisher{}
	engine := NewRemoteEngine(publisher)
	ctx := context.Background()

	if err := engine.Load(ctx, domain.Track{ID: "abc"}); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if err := engine.Play(ctx); err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if err := engine.Pause(ctx); err != nil {
		t.Fatalf("Pause returned error: %v", err)
	}
	if err := engine.SeekTo(ctx, 30); err != nil {
		t.Fatalf("SeekTo returned error: %v", err)
	}
	if err := engine.SetVolume(ctx, 80); err != nil {
		t.Fatalf("SetVolume returned error: %v", err)
	}

	want := []domain.EngineCommandEvent{
		{Command: domain.CommandLoad, TrackID: "abc"},
		{Command: domain.CommandPlay},
		{Command: domain.CommandPause},
		{Command: domain.CommandSeek, Seconds: 30},
		{Command: domain.CommandSetVolume, Volume: 80},
	}
	if len(publisher.commands) != len(want) {
		t.Fatalf("expected %d commands, got %d", len(want), len(publisher.commands))
	}
	for i, w := range want {
		if publisher.commands[i] != w {
			t.Errorf("command %d = %+v, want %+v", i, publisher.commands[i], w)
		}
	}
}

func TestRemoteEngine_ReportProgress(t *testing.T) {
	engine := NewRemoteEngine(&capturingPublisher{})
	ctx := context.Background()

	engine.ReportProgress(65, 212)

	position, err := engine.Position(ctx)
	if err != nil {
		t.Fatalf("Position returned error: %v", err)
	}
	if position < 65 {
		t.Errorf("expected position >= 65, got %v", position)
	}

	duration, err := engine.Duration(ctx)
	if err != nil {
		t.Fatalf("Duration returned error: %v", err)
	}
	if duration != 212 {
		t.Errorf("expected duration 212, got %v", duration)
	}
}

func TestRemoteEngine_PositionExtrapolationClamped(t *testing.T) {
	engine := NewRemoteEngine(&capturingPublisher{})
	engine.ReportState(domain.EnginePlaying)
	engine.ReportProgress(211.9, 212)

	position, err := engine.Position(context.Background())
	if err != nil {
		t.Fatalf("Position returned error: %v", err)
	}
	if position > 212 {
		t.Errorf("expected position clamped to duration, got %v", position)
	}
}

func TestRemoteEngine_LoadResetsProgress(t *testing.T) {
	engine := NewRemoteEngine(&capturingPublisher{})
	engine.ReportProgress(100, 200)

	if err := engine.Load(context.Background(), domain.Track{ID: "next"}); err != nil {
		t.Fatal(err)
	}

	position, _ := engine.Position(context.Background())
	if position != 0 {
		t.Errorf("expected position reset to 0, got %v", position)
	}
	duration, _ := engine.Duration(context.Background())
	if duration != 0 {
		t.Errorf("expected duration reset to 0, got %v", duration)
	}
}

func TestRemoteEngine_ReportState(t *testing.T) {
	engine := NewRemoteEngine(&capturingPublisher{})

	if got := engine.State(); got != domain.EngineUnstarted {
		t.Errorf("expected initial state unstarted, got %v", got)
	}

	engine.ReportState(domain.EnginePlaying)
	if got := engine.State(); got != domain.EnginePlaying {
		t.Errorf("expected playing, got %v", got)
	}
}
