package ports

import (
	"context"

	"github.com/klyne/auralis/internal/modules/player/domain"
)

// EventSubscriber defines the interface for subscribing to player events.
// Handlers are registered with the subscriber and invoked when events occur.
type EventSubscriber interface {
	OnQueueChanged(handler func(context.Context, domain.QueueChangedEvent))
	OnTrackStarted(handler func(context.Context, domain.TrackStartedEvent))
	OnStateChanged(handler func(context.Context, domain.StateChangedEvent))
	OnProgressUpdated(handler func(context.Context, domain.ProgressUpdatedEvent))
	OnEngineError(handler func(context.Context, domain.EngineErrorEvent))
	OnEngineCommand(handler func(context.Context, domain.EngineCommandEvent))
}
