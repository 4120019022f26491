package bootstrap

import (
	"bytes"
	"context"
	"testing"
	"time"

	"timetrack/internal/modules/agent/domain"
	"timetrack/internal/platform/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	app, err := New(cfg, ModeCLI, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestNewWiresCLIHandlers(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	ctx := context.Background()

	if _, err := app.TaskCLI.Add(ctx, "triage inbox", "medium"); err != nil {
		t.Fatalf("add task: %v", err)
	}
	tasks, err := app.TaskCLI.List(ctx)
	if err != nil || len(tasks) != 1 {
		t.Fatalf("unexpected tasks %+v err=%v", tasks, err)
	}
	report, err := app.SessionCLI.Report(ctx)
	if err != nil || len(report.Tasks) != 0 {
		t.Fatalf("unexpected report %+v err=%v", report, err)
	}
	if app.Settings.ActiveTimeoutSeconds != 15 {
		t.Fatalf("expected default settings, got %+v", app.Settings)
	}
}

func TestRuntimePersistsThroughSQLite(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	ctx := context.Background()
	task, err := app.TaskCLI.Add(ctx, "write docs", "high")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}

	rt := app.newRuntime()
	events := rt.Subscribe()
	done := make(chan error, 1)
	go func() { done <- rt.Run(ctx) }()

	rt.Commander().Send(domain.StartSession{TaskID: task.ID})
	rt.Commander().Send(domain.EndSession{Comment: "first draft"})

	deadline, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	for {
		e, err := events.Recv(deadline)
		if err != nil {
			t.Fatalf("waiting for save: %v", err)
		}
		if _, ok := e.(domain.SessionSavedEvent); ok {
			break
		}
		if ev, ok := e.(domain.ErrorEvent); ok {
			t.Fatalf("runtime error: %v", ev)
		}
	}
	rt.Commander().Send(domain.Quit{})
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}

	sessions, err := app.SessionCLI.List(ctx, 10)
	if err != nil || len(sessions) != 1 {
		t.Fatalf("unexpected sessions %+v err=%v", sessions, err)
	}
	if sessions[0].Comment != "first draft" || sessions[0].TaskName != "write docs" || sessions[0].UserID != 1 {
		t.Fatalf("unexpected session %+v", sessions[0])
	}
}

func TestRunDaemonStopsOnCancel(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	app.Settings.RetryIntervalSeconds = 1

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- RunDaemon(ctx, app, t.TempDir()) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("daemon did not stop")
	}
}
