package in

import (
	"sync"
	"testing"
	"time"

	"timetrack/internal/modules/agent/domain"
)

type recordingCommander struct {
	mu   sync.Mutex
	sent []domain.Command
}

func (r *recordingCommander) Send(cmd domain.Command) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, cmd)
	return true
}

func (r *recordingCommander) commands() []domain.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Command(nil), r.sent...)
}

func TestActivityReporterDebounces(t *testing.T) {
	t.Parallel()
	rec := &recordingCommander{}
	reporter := NewActivityReporter(rec, time.Second)
	base := time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC)

	sent := 0
	for i := 0; i < 10; i++ {
		if reporter.Report(base.Add(time.Duration(i) * 100 * time.Millisecond)) {
			sent++
		}
	}
	if sent != 1 {
		t.Fatalf("expected one command in the first second, got %d", sent)
	}
	if !reporter.Report(base.Add(1500 * time.Millisecond)) {
		t.Fatalf("expected a command once the window passed")
	}

	cmds := rec.commands()
	if len(cmds) != 2 {
		t.Fatalf("expected two commands, got %d", len(cmds))
	}
	if act, ok := cmds[0].(domain.UserActivity); !ok || !act.At.Equal(base) {
		t.Fatalf("unexpected first command %+v", cmds[0])
	}
}

func TestActivityReporterWithoutDebounceForwardsAll(t *testing.T) {
	t.Parallel()
	rec := &recordingCommander{}
	reporter := NewActivityReporter(rec, 0)
	base := time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		reporter.Report(base)
	}
	if got := len(rec.commands()); got != 5 {
		t.Fatalf("expected every report forwarded, got %d", got)
	}
}
