package domain

import (
	"testing"
	"time"
)

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)}
}

func TestStopWatchSumsIntervals(t *testing.T) {
	t.Parallel()
	clk := newManualClock()
	sw := NewStopWatch(clk)

	sw.Start()
	clk.advance(10 * time.Second)
	sw.Stop()
	clk.advance(time.Minute)
	sw.Start()
	clk.advance(5 * time.Second)

	if got := sw.Elapsed(); got != 15*time.Second {
		t.Fatalf("expected 15s while running, got %s", got)
	}
	sw.Stop()
	clk.advance(time.Hour)
	if got := sw.Elapsed(); got != 15*time.Second {
		t.Fatalf("expected 15s after stop, got %s", got)
	}
}

func TestStopWatchStartAndStopAreIdempotent(t *testing.T) {
	t.Parallel()
	clk := newManualClock()
	sw := NewStopWatch(clk)

	sw.Start()
	clk.advance(3 * time.Second)
	sw.Start()
	clk.advance(4 * time.Second)
	if got := sw.Elapsed(); got != 7*time.Second {
		t.Fatalf("double start drifted: %s", got)
	}

	sw.Stop()
	clk.advance(2 * time.Second)
	sw.Stop()
	if got := sw.Elapsed(); got != 7*time.Second {
		t.Fatalf("double stop changed total: %s", got)
	}
}

func TestStopWatchResetClearsHistory(t *testing.T) {
	t.Parallel()
	clk := newManualClock()
	sw := NewStopWatch(clk)

	sw.Start()
	clk.advance(30 * time.Second)
	sw.Reset()
	if sw.Running() || sw.Elapsed() != 0 {
		t.Fatalf("expected zeroed stopwatch, running=%v elapsed=%s", sw.Running(), sw.Elapsed())
	}

	sw.Start()
	clk.advance(2 * time.Second)
	if got := sw.Elapsed(); got != 2*time.Second {
		t.Fatalf("expected fresh count from zero, got %s", got)
	}
}

func TestStopWatchElapsedIsMonotonicAndNeverNegative(t *testing.T) {
	t.Parallel()
	clk := newManualClock()
	sw := NewStopWatch(clk)
	sw.Start()

	var last time.Duration
	for i := 0; i < 5; i++ {
		clk.advance(time.Second)
		got := sw.Elapsed()
		if got < last {
			t.Fatalf("elapsed went backwards: %s after %s", got, last)
		}
		last = got
	}

	clk.advance(-time.Hour)
	if got := sw.Elapsed(); got < 0 {
		t.Fatalf("elapsed negative after clock step back: %s", got)
	}
	sw.Stop()
	if got := sw.Elapsed(); got != 0 {
		t.Fatalf("expected backwards interval clamped to zero, got %s", got)
	}
}

func TestStopWatchStopAtBackdatesInterval(t *testing.T) {
	t.Parallel()
	clk := newManualClock()
	sw := NewStopWatch(clk)
	start := clk.Now()

	sw.Start()
	clk.advance(time.Minute)
	if trimmed := sw.StopAt(start.Add(20 * time.Second)); trimmed != 40*time.Second {
		t.Fatalf("expected 40s trimmed, got %s", trimmed)
	}
	if got := sw.Elapsed(); got != 20*time.Second {
		t.Fatalf("expected 20s, got %s", got)
	}

	sw.Start()
	clk.advance(5 * time.Second)
	if trimmed := sw.StopAt(start); trimmed != 5*time.Second {
		t.Fatalf("expected the whole interval trimmed, got %s", trimmed)
	}
	if got := sw.Elapsed(); got != 20*time.Second {
		t.Fatalf("stop before start should credit nothing, got %s", got)
	}
	if trimmed := sw.StopAt(start); trimmed != 0 {
		t.Fatalf("stopped watch should trim nothing, got %s", trimmed)
	}
}
