package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/klyne/auralis/internal/modules/player/application/ports"
	"github.com/klyne/auralis/internal/modules/player/domain"
)

// clientBufferSize is the per-client send buffer. Slow clients that
// fall this far behind are disconnected rather than blocking the hub.
const clientBufferSize = 32

type sseMessage struct {
	name string
	data []byte
}

// SSEHub fans player events out to connected server-sent-events
// clients. Every message carries a monotonically increasing id so
// clients can detect gaps after a reconnect.
type SSEHub struct {
	mu       sync.Mutex
	nextID   int
	clients  map[int]chan sseMessage
	snapshot func(ctx context.Context) any
}

// NewSSEHub creates a hub and subscribes it to the given event source.
func NewSSEHub(subscriber ports.EventSubscriber) *SSEHub {
	hub := &SSEHub{
		clients: make(map[int]chan sseMessage),
	}

	subscriber.OnQueueChanged(func(_ context.Context, event domain.QueueChangedEvent) {
		hub.broadcast("queue", event)
	})
	subscriber.OnTrackStarted(func(_ context.Context, event domain.TrackStartedEvent) {
		hub.broadcast("track", event)
	})
	subscriber.OnStateChanged(func(_ context.Context, event domain.StateChangedEvent) {
		hub.broadcast("state", event)
	})
	subscriber.OnProgressUpdated(func(_ context.Context, event domain.ProgressUpdatedEvent) {
		hub.broadcast("progress", event)
	})
	subscriber.OnEngineError(func(_ context.Context, event domain.EngineErrorEvent) {
		hub.broadcast("engine_error", event)
	})
	subscriber.OnEngineCommand(func(_ context.Context, event domain.EngineCommandEvent) {
		hub.broadcast("command", event)
	})

	return hub
}

// SetSnapshot installs a callback that produces the current player
// state; new clients receive it as their first event.
func (h *SSEHub) SetSnapshot(snapshot func(ctx context.Context) any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snapshot = snapshot
}

func (h *SSEHub) broadcast(name string, event any) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to encode event for stream", "event", name, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	message := sseMessage{name: name, data: data}
	for id, ch := range h.clients {
		select {
		case ch <- message:
		default:
			slog.Warn("dropping slow event stream client", "client", id)
			close(ch)
			delete(h.clients, id)
		}
	}
}

func (h *SSEHub) subscribe() (int, <-chan sseMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	ch := make(chan sseMessage, clientBufferSize)
	h.clients[id] = ch
	return id, ch
}

func (h *SSEHub) unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.clients[id]; ok {
		close(ch)
		delete(h.clients, id)
	}
}

// ClientCount returns the number of connected clients.
func (h *SSEHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP streams events to one client until it disconnects.
func (h *SSEHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	id, ch := h.subscribe()
	defer h.unsubscribe(id)

	seq := 0

	h.mu.Lock()
	snapshot := h.snapshot
	h.mu.Unlock()
	if snapshot != nil {
		if data, err := json.Marshal(snapshot(r.Context())); err == nil {
			seq++
			fmt.Fprintf(w, "id: %d\nevent: snapshot\ndata: %s\n\n", seq, data)
			flusher.Flush()
		} else {
			slog.Error("failed to encode state snapshot for stream", "error", err)
		}
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case message, ok := <-ch:
			if !ok {
				return
			}
			seq++
			fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", seq, message.name, message.data)
			flusher.Flush()
		}
	}
}
