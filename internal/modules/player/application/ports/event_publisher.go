package ports

import "github.com/klyne/auralis/internal/modules/player/domain"

// EventPublisher defines the interface for publishing player events
// asynchronously. Implementations must not block the caller.
type EventPublisher interface {
	PublishQueueChanged(event domain.QueueChangedEvent)
	PublishTrackStarted(event domain.TrackStartedEvent)
	PublishStateChanged(event domain.StateChangedEvent)
	PublishProgressUpdated(event domain.ProgressUpdatedEvent)
	PublishEngineError(event domain.EngineErrorEvent)
	PublishEngineCommand(event domain.EngineCommandEvent)
}
