package infrastructure

import (
	"bufio"
	"context"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/klyne/auralis/internal/modules/player/domain"
)

func TestMPVEngine_ObserveState(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "mpv.sock")
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		t.Fatalf("failed to listen on %s: %v", socketPath, err)
	}
	defer listener.Close()

	lines := []string{
		// Initial values arrive while mpv is idle and must be dropped.
		`{"event":"property-change","id":1,"name":"pause","data":false}`,
		`{"event":"property-change","id":2,"name":"idle-active","data":true}`,
		`{"event":"property-change","id":2,"name":"idle-active","data":false}`,
		`{"event":"property-change","id":1,"name":"pause","data":true}`,
		`{"event":"property-change","id":1,"name":"pause","data":false}`,
		`{"event":"end-file","reason":"stop"}`,
		`{"event":"end-file","reason":"eof"}`,
		`{"event":"end-file","reason":"error"}`,
	}

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		// Drain the two observe_property subscriptions first.
		reader := bufio.NewReader(conn)
		for range 2 {
			if _, err := reader.ReadBytes('\n'); err != nil {
				return
			}
		}
		for _, line := range lines {
			if _, err := conn.Write([]byte(line + "\n")); err != nil {
				return
			}
		}
	}()

	want := []domain.EngineState{
		domain.EnginePaused,
		domain.EnginePlaying,
		domain.EngineEnded,
		domain.EngineError,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu       sync.Mutex
		reported []domain.EngineState
	)
	done := make(chan struct{})

	engine := NewMPVEngine(socketPath)
	go engine.ObserveState(ctx, func(_ context.Context, state domain.EngineState) {
		mu.Lock()
		defer mu.Unlock()
		reported = append(reported, state)
		if len(reported) == len(want) {
			close(done)
		}
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		mu.Lock()
		defer mu.Unlock()
		t.Fatalf("timed out waiting for state reports, got %v", reported)
	}
	cancel()

	mu.Lock()
	defer mu.Unlock()
	for i, state := range want {
		if reported[i] != state {
			t.Errorf("report %d: expected %v, got %v", i, state, reported[i])
		}
	}
}
