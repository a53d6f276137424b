package infrastructure

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/klyne/auralis/internal/modules/player/application/ports"
	"github.com/klyne/auralis/internal/modules/player/domain"
)

// Compile-time check that MPVEngine implements ports.PlaybackEngine.
var _ ports.PlaybackEngine = (*MPVEngine)(nil)

// MPVEngine drives a local mpv process over its JSON IPC socket.
// mpv must be started with --input-ipc-server pointing at socketPath
// and --idle so it waits for loadfile commands.
type MPVEngine struct {
	socketPath string

	mu        sync.Mutex
	conn      net.Conn
	reader    *bufio.Reader
	requestID int
}

// NewMPVEngine creates a new MPVEngine for the given IPC socket path.
// The connection is established lazily on first use.
func NewMPVEngine(socketPath string) *MPVEngine {
	return &MPVEngine{socketPath: socketPath}
}

type mpvRequest struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id"`
}

type mpvResponse struct {
	Error     string          `json:"error"`
	Data      json.RawMessage `json:"data"`
	RequestID int             `json:"request_id"`
	Event     string          `json:"event"`
}

type mpvEvent struct {
	Event  string          `json:"event"`
	Name   string          `json:"name"`
	Data   json.RawMessage `json:"data"`
	Reason string          `json:"reason"`
}

func (e *MPVEngine) connectLocked() error {
	if e.conn != nil {
		return nil
	}

	conn, err := net.Dial("unix", e.socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect to mpv socket %s: %w", e.socketPath, err)
	}

	e.conn = conn
	e.reader = bufio.NewReader(conn)
	return nil
}

// command sends one IPC command and waits for its matching response,
// skipping any asynchronous event lines mpv interleaves on the socket.
func (e *MPVEngine) command(ctx context.Context, args ...any) (json.RawMessage, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.connectLocked(); err != nil {
		return nil, err
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = e.conn.SetDeadline(deadline)
	}

	e.requestID++
	request := mpvRequest{Command: args, RequestID: e.requestID}

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mpv command: %w", err)
	}
	if _, err := e.conn.Write(append(payload, '\n')); err != nil {
		e.resetLocked()
		return nil, fmt.Errorf("failed to write mpv command: %w", err)
	}

	for {
		line, err := e.reader.ReadBytes('\n')
		if err != nil {
			e.resetLocked()
			return nil, fmt.Errorf("failed to read mpv response: %w", err)
		}

		var response mpvResponse
		if err := json.Unmarshal(line, &response); err != nil {
			continue
		}
		if response.Event != "" || response.RequestID != e.requestID {
			continue
		}
		if response.Error != "success" {
			return nil, fmt.Errorf("mpv command failed: %s", response.Error)
		}
		return response.Data, nil
	}
}

func (e *MPVEngine) resetLocked() {
	if e.conn != nil {
		_ = e.conn.Close()
	}
	e.conn = nil
	e.reader = nil
}

func (e *MPVEngine) setProperty(ctx context.Context, name string, value any) error {
	_, err := e.command(ctx, "set_property", name, value)
	return err
}

func (e *MPVEngine) getFloat(ctx context.Context, name string) (float64, error) {
	data, err := e.command(ctx, "get_property", name)
	if err != nil {
		return 0, err
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return 0, fmt.Errorf("unexpected mpv property value for %s: %w", name, err)
	}
	return value, nil
}

// Load replaces the current file and starts playback.
func (e *MPVEngine) Load(ctx context.Context, track domain.Track) error {
	if _, err := e.command(ctx, "loadfile", track.ID, "replace"); err != nil {
		return err
	}
	return e.setProperty(ctx, "pause", false)
}

// Play resumes playback.
func (e *MPVEngine) Play(ctx context.Context) error {
	return e.setProperty(ctx, "pause", false)
}

// Pause pauses playback.
func (e *MPVEngine) Pause(ctx context.Context) error {
	return e.setProperty(ctx, "pause", true)
}

// SeekTo moves to an absolute position in seconds.
func (e *MPVEngine) SeekTo(ctx context.Context, seconds float64) error {
	_, err := e.command(ctx, "seek", seconds, "absolute")
	return err
}

// Position returns the current playback offset in seconds.
func (e *MPVEngine) Position(ctx context.Context) (float64, error) {
	return e.getFloat(ctx, "time-pos")
}

// Duration returns the loaded file's length in seconds.
func (e *MPVEngine) Duration(ctx context.Context) (float64, error) {
	return e.getFloat(ctx, "duration")
}

// SetVolume sets the playback volume as a 0-100 percentage.
func (e *MPVEngine) SetVolume(ctx context.Context, percent int) error {
	return e.setProperty(ctx, "volume", percent)
}

// Close tears down the IPC connection.
func (e *MPVEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
	return nil
}

// ObserveState watches mpv's asynchronous event stream and reports
// engine state transitions through report. It dials a dedicated
// connection so events never interleave with command responses, and
// keeps reconnecting until ctx is cancelled. Intended to run as a
// goroutine.
func (e *MPVEngine) ObserveState(ctx context.Context, report func(context.Context, domain.EngineState)) {
	for {
		if err := e.observeOnce(ctx, report); err != nil {
			slog.Warn("mpv event connection lost", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
}

func (e *MPVEngine) observeOnce(ctx context.Context, report func(context.Context, domain.EngineState)) error {
	conn, err := net.Dial("unix", e.socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect to mpv socket %s: %w", e.socketPath, err)
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stop:
		}
	}()

	for id, name := range []string{"pause", "idle-active"} {
		request := mpvRequest{Command: []any{"observe_property", id + 1, name}, RequestID: id + 1}
		payload, err := json.Marshal(request)
		if err != nil {
			return fmt.Errorf("failed to encode mpv observe command: %w", err)
		}
		if _, err := conn.Write(append(payload, '\n')); err != nil {
			return fmt.Errorf("failed to subscribe to mpv events: %w", err)
		}
	}

	// mpv answers observe_property with an immediate property-change
	// carrying the current value. Pause flips while nothing is loaded
	// are meaningless, so they are dropped until idle-active clears.
	idle := true
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to read mpv event: %w", err)
		}

		var event mpvEvent
		if err := json.Unmarshal(line, &event); err != nil {
			continue
		}

		switch event.Event {
		case "property-change":
			switch event.Name {
			case "idle-active":
				var active bool
				if json.Unmarshal(event.Data, &active) == nil {
					idle = active
				}
			case "pause":
				var paused bool
				if idle || json.Unmarshal(event.Data, &paused) != nil {
					continue
				}
				if paused {
					report(ctx, domain.EnginePaused)
				} else {
					report(ctx, domain.EnginePlaying)
				}
			}
		case "end-file":
			switch event.Reason {
			case "eof":
				report(ctx, domain.EngineEnded)
			case "error":
				report(ctx, domain.EngineError)
			}
		}
	}
}
