package domain

import (
	"time"

	sessiondomain "timetrack/internal/modules/session/domain"
	"timetrack/internal/platform/clock"
)

// PendingSession is a completed session whose save has not succeeded yet.
type PendingSession struct {
	Session  sessiondomain.Session
	Attempts int
	LastErr  error
}

// RuntimeState is owned by the runtime loop goroutine. A session can be in
// progress while the stopwatch is paused for idleness.
type RuntimeState struct {
	StopWatch      *StopWatch
	Session        sessiondomain.Session
	TaskInProgress bool
	Activity       *ActivityTracker
	Pending        []PendingSession
}

func NewRuntimeState(clk clock.Clock, timeout time.Duration) RuntimeState {
	return RuntimeState{
		StopWatch: NewStopWatch(clk),
		Activity:  NewActivityTracker(timeout),
	}
}
