package domain

import (
	"time"

	"timetrack/internal/platform/clock"
)

// StopWatch accumulates running time across start/stop cycles. The
// accumulated total only grows until Reset.
type StopWatch struct {
	clock        clock.Clock
	runningSince time.Time
	running      bool
	accumulated  time.Duration
}

func NewStopWatch(clk clock.Clock) *StopWatch {
	return &StopWatch{clock: clk}
}

// Start is a no-op while already running.
func (s *StopWatch) Start() {
	if s.running {
		return
	}
	s.runningSince = s.clock.Now()
	s.running = true
}

// Stop is a no-op while already stopped.
func (s *StopWatch) Stop() {
	s.StopAt(s.clock.Now())
}

// StopAt closes the running interval at t instead of now. A t before the
// interval began credits nothing. It returns how much running time the
// backdating removed, which listeners may already have been shown.
func (s *StopWatch) StopAt(t time.Time) time.Duration {
	if !s.running {
		return 0
	}
	now := s.clock.Now()
	if t.After(now) {
		t = now
	}
	credited := clock.Since(t, s.runningSince)
	trimmed := clock.Since(now, s.runningSince) - credited
	s.accumulated += credited
	s.running = false
	s.runningSince = time.Time{}
	return trimmed
}

// Reset discards both the accumulated total and any in-flight interval.
func (s *StopWatch) Reset() {
	s.running = false
	s.runningSince = time.Time{}
	s.accumulated = 0
}

func (s *StopWatch) Elapsed() time.Duration {
	if !s.running {
		return s.accumulated
	}
	return s.accumulated + clock.Since(s.clock.Now(), s.runningSince)
}

func (s *StopWatch) Running() bool {
	return s.running
}
