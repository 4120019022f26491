//go:build unix

package in

import (
	"context"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"timetrack/internal/modules/agent/domain"
	"timetrack/internal/platform/logging"
)

func TestSignalSourceDispatch(t *testing.T) {
	t.Parallel()
	rec := &recordingCommander{}
	src := NewSignalSource(rec, logging.Discard())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- src.Run(ctx) }()

	src.signals <- unix.SIGUSR1
	src.signals <- unix.SIGTERM

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-ctx.Done():
		t.Fatalf("signal source did not stop on SIGTERM")
	}

	cmds := rec.commands()
	if len(cmds) != 2 {
		t.Fatalf("expected show then quit, got %+v", cmds)
	}
	if _, ok := cmds[0].(domain.ShowUI); !ok {
		t.Fatalf("expected ShowUI first, got %+v", cmds[0])
	}
	if _, ok := cmds[1].(domain.Quit); !ok {
		t.Fatalf("expected Quit second, got %+v", cmds[1])
	}
}
