package out

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"timetrack/internal/modules/agent/channel"
	"timetrack/internal/modules/agent/domain"
)

func TestLogListenerStopsOnQuit(t *testing.T) {
	t.Parallel()
	logger, hook := test.NewNullLogger()
	listener := NewLogListener(logger)

	box := channel.NewMailbox[domain.Event]()
	box.Publish(domain.UserStateEvent{State: domain.Idle, LastActivity: time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC)})
	box.Publish(domain.ErrorEvent{Op: "save session", Err: errors.New("disk full")})
	box.Publish(domain.QuitEvent{})
	box.Publish(domain.ElapsedTimeEvent{})

	if err := listener.Run(context.Background(), box); err != nil {
		t.Fatalf("run: %v", err)
	}

	entries := hook.AllEntries()
	if len(entries) != 3 {
		t.Fatalf("expected three log entries, got %d", len(entries))
	}
	if entries[0].Message != "user Idle" {
		t.Fatalf("unexpected first message %q", entries[0].Message)
	}
	if entries[1].Level != logrus.ErrorLevel || entries[1].Data["op"] != "save session" {
		t.Fatalf("unexpected error entry %+v", entries[1])
	}
	if entries[2].Message != "quit" {
		t.Fatalf("expected quit last, got %q", entries[2].Message)
	}
}

func TestLogListenerReportsTrimmedIdleTime(t *testing.T) {
	t.Parallel()
	logger, hook := test.NewNullLogger()
	NewLogListener(logger).Handle(domain.ElapsedTimeEvent{Elapsed: 20 * time.Second, Trimmed: 15 * time.Second})

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.InfoLevel {
		t.Fatalf("expected an info entry, got %+v", entry)
	}
	if entry.Data["trimmed"] != "00:00:15" || entry.Data["elapsed"] != "00:00:20" {
		t.Fatalf("unexpected fields %+v", entry.Data)
	}
}

func TestLogListenerReturnsWhenMailboxCloses(t *testing.T) {
	t.Parallel()
	logger, _ := test.NewNullLogger()
	box := channel.NewMailbox[domain.Event]()
	box.Close()
	if err := NewLogListener(logger).Run(context.Background(), box); err != nil {
		t.Fatalf("expected clean return, got %v", err)
	}
}

func TestLogListenerControlQuit(t *testing.T) {
	t.Parallel()
	logger, hook := test.NewNullLogger()
	controls := channel.NewMailbox[domain.Control]()
	controls.Publish(domain.ControlShow)
	controls.Publish(domain.ControlQuit)

	if err := NewLogListener(logger).RunControl(context.Background(), controls); err != nil {
		t.Fatalf("run control: %v", err)
	}
	if len(hook.AllEntries()) != 1 {
		t.Fatalf("expected one show entry, got %d", len(hook.AllEntries()))
	}
}
