package infrastructure

import (
	"context"
	"log/slog"
	"sync"

	"github.com/klyne/auralis/internal/modules/player/application/ports"
	"github.com/klyne/auralis/internal/modules/player/domain"
)

// DefaultEventBufferSize is the default buffer size for event channels.
const DefaultEventBufferSize = 100

// Compile-time checks that ChannelEventBus implements ports interfaces.
var (
	_ ports.EventPublisher  = (*ChannelEventBus)(nil)
	_ ports.EventSubscriber = (*ChannelEventBus)(nil)
)

// ChannelEventBus provides a channel-based event bus for async event
// handling. It implements both EventPublisher and EventSubscriber.
type ChannelEventBus struct {
	// Channels for event delivery
	queueChanged    chan domain.QueueChangedEvent
	trackStarted    chan domain.TrackStartedEvent
	stateChanged    chan domain.StateChangedEvent
	progressUpdated chan domain.ProgressUpdatedEvent
	engineError     chan domain.EngineErrorEvent
	engineCommand   chan domain.EngineCommandEvent

	// Handler slices for callback-based subscription
	queueChangedHandlers    []func(context.Context, domain.QueueChangedEvent)
	trackStartedHandlers    []func(context.Context, domain.TrackStartedEvent)
	stateChangedHandlers    []func(context.Context, domain.StateChangedEvent)
	progressUpdatedHandlers []func(context.Context, domain.ProgressUpdatedEvent)
	engineErrorHandlers     []func(context.Context, domain.EngineErrorEvent)
	engineCommandHandlers   []func(context.Context, domain.EngineCommandEvent)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool
	mu     sync.RWMutex
}

// NewChannelEventBus creates a new ChannelEventBus with the given buffer size.
func NewChannelEventBus(bufferSize int) *ChannelEventBus {
	if bufferSize <= 0 {
		bufferSize = DefaultEventBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	bus := &ChannelEventBus{
		queueChanged:    make(chan domain.QueueChangedEvent, bufferSize),
		trackStarted:    make(chan domain.TrackStartedEvent, bufferSize),
		stateChanged:    make(chan domain.StateChangedEvent, bufferSize),
		progressUpdated: make(chan domain.ProgressUpdatedEvent, bufferSize),
		engineError:     make(chan domain.EngineErrorEvent, bufferSize),
		engineCommand:   make(chan domain.EngineCommandEvent, bufferSize),
		ctx:             ctx,
		cancel:          cancel,
	}

	// Start dispatcher goroutines
	bus.startDispatchers()

	return bus
}

// startDispatchers starts goroutines that dispatch events to registered handlers.
func (b *ChannelEventBus) startDispatchers() {
	b.wg.Add(6)

	go dispatch(b, b.queueChanged, func() []func(context.Context, domain.QueueChangedEvent) {
		return b.queueChangedHandlers
	})
	go dispatch(b, b.trackStarted, func() []func(context.Context, domain.TrackStartedEvent) {
		return b.trackStartedHandlers
	})
	go dispatch(b, b.stateChanged, func() []func(context.Context, domain.StateChangedEvent) {
		return b.stateChangedHandlers
	})
	go dispatch(b, b.progressUpdated, func() []func(context.Context, domain.ProgressUpdatedEvent) {
		return b.progressUpdatedHandlers
	})
	go dispatch(b, b.engineError, func() []func(context.Context, domain.EngineErrorEvent) {
		return b.engineErrorHandlers
	})
	go dispatch(b, b.engineCommand, func() []func(context.Context, domain.EngineCommandEvent) {
		return b.engineCommandHandlers
	})
}

// dispatch drains one event channel, invoking the current handler set
// for each event until the bus context is cancelled.
func dispatch[E any](b *ChannelEventBus, ch <-chan E, handlers func() []func(context.Context, E)) {
	defer b.wg.Done()
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			b.mu.RLock()
			hs := handlers()
			b.mu.RUnlock()
			for _, handler := range hs {
				handler(b.ctx, event)
			}
		}
	}
}

// publish sends an event on its channel without blocking. Events are
// dropped with a warning when the buffer is full or the bus is closed.
func publish[E any](b *ChannelEventBus, ch chan<- E, eventType string, event E) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		slog.Warn("attempted to publish to closed event bus", "type", eventType)
		return
	}

	select {
	case ch <- event:
		slog.Debug("published event", "type", eventType)
	default:
		slog.Warn("event buffer full, dropping event", "type", eventType)
	}
}

// --- EventPublisher interface ---

// PublishQueueChanged publishes a QueueChangedEvent.
func (b *ChannelEventBus) PublishQueueChanged(event domain.QueueChangedEvent) {
	publish(b, b.queueChanged, "QueueChanged", event)
}

// PublishTrackStarted publishes a TrackStartedEvent.
func (b *ChannelEventBus) PublishTrackStarted(event domain.TrackStartedEvent) {
	publish(b, b.trackStarted, "TrackStarted", event)
}

// PublishStateChanged publishes a StateChangedEvent.
func (b *ChannelEventBus) PublishStateChanged(event domain.StateChangedEvent) {
	publish(b, b.stateChanged, "StateChanged", event)
}

// PublishProgressUpdated publishes a ProgressUpdatedEvent.
func (b *ChannelEventBus) PublishProgressUpdated(event domain.ProgressUpdatedEvent) {
	publish(b, b.progressUpdated, "ProgressUpdated", event)
}

// PublishEngineError publishes an EngineErrorEvent.
func (b *ChannelEventBus) PublishEngineError(event domain.EngineErrorEvent) {
	publish(b, b.engineError, "EngineError", event)
}

// PublishEngineCommand publishes an EngineCommandEvent.
func (b *ChannelEventBus) PublishEngineCommand(event domain.EngineCommandEvent) {
	publish(b, b.engineCommand, "EngineCommand", event)
}

// --- EventSubscriber interface ---

// OnQueueChanged registers a handler for QueueChangedEvent.
func (b *ChannelEventBus) OnQueueChanged(handler func(context.Context, domain.QueueChangedEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queueChangedHandlers = append(b.queueChangedHandlers, handler)
}

// OnTrackStarted registers a handler for TrackStartedEvent.
func (b *ChannelEventBus) OnTrackStarted(handler func(context.Context, domain.TrackStartedEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trackStartedHandlers = append(b.trackStartedHandlers, handler)
}

// OnStateChanged registers a handler for StateChangedEvent.
func (b *ChannelEventBus) OnStateChanged(handler func(context.Context, domain.StateChangedEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stateChangedHandlers = append(b.stateChangedHandlers, handler)
}

// OnProgressUpdated registers a handler for ProgressUpdatedEvent.
func (b *ChannelEventBus) OnProgressUpdated(
	handler func(context.Context, domain.ProgressUpdatedEvent),
) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.progressUpdatedHandlers = append(b.progressUpdatedHandlers, handler)
}

// OnEngineError registers a handler for EngineErrorEvent.
func (b *ChannelEventBus) OnEngineError(handler func(context.Context, domain.EngineErrorEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.engineErrorHandlers = append(b.engineErrorHandlers, handler)
}

// OnEngineCommand registers a handler for EngineCommandEvent.
func (b *ChannelEventBus) OnEngineCommand(handler func(context.Context, domain.EngineCommandEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.engineCommandHandlers = append(b.engineCommandHandlers, handler)
}

// Close closes all event channels and stops dispatchers.
// After calling Close, publishing will no longer send events.
func (b *ChannelEventBus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	// Cancel context to stop dispatchers
	b.cancel()

	// Close channels to unblock any pending reads
	close(b.queueChanged)
	close(b.trackStarted)
	close(b.stateChanged)
	close(b.progressUpdated)
	close(b.engineError)
	close(b.engineCommand)

	// Wait for dispatchers to finish
	b.wg.Wait()

	slog.Debug("channel event bus closed")
}
