package domain

import (
	"fmt"
	"time"
)

type Classification int

const (
	Idle Classification = iota
	Active
)

func (c Classification) String() string {
	switch c {
	case Idle:
		return "Idle"
	case Active:
		return "Active"
	default:
		return fmt.Sprintf("Classification(%d)", int(c))
	}
}

// Transition reports what an evaluation changed.
type Transition int

const (
	NoTransition Transition = iota
	BecameIdle
)

// ActivityTracker classifies the user as Active or Idle from the last observed
// input and a timeout. It starts Idle with no recorded activity.
type ActivityTracker struct {
	Timeout time.Duration

	classification Classification
	lastActivityAt time.Time
}

func NewActivityTracker(timeout time.Duration) *ActivityTracker {
	return &ActivityTracker{Timeout: timeout}
}

func (a *ActivityTracker) Classification() Classification {
	return a.classification
}

func (a *ActivityTracker) LastActivityAt() time.Time {
	return a.lastActivityAt
}

// Observe records input at t and reports whether the tracker woke from Idle.
// An observation older than the recorded one does not move the timestamp back.
func (a *ActivityTracker) Observe(t time.Time) bool {
	woke := a.classification == Idle
	a.classification = Active
	if t.After(a.lastActivityAt) {
		a.lastActivityAt = t
	}
	return woke
}

// Evaluate moves Active to Idle once now reaches lastActivityAt+Timeout. While
// Active it also returns the time left until that deadline. Idle is sticky.
func (a *ActivityTracker) Evaluate(now time.Time) (Transition, time.Duration) {
	if a.classification == Idle {
		return NoTransition, 0
	}
	deadline := a.lastActivityAt.Add(a.Timeout)
	if !now.Before(deadline) {
		a.classification = Idle
		return BecameIdle, 0
	}
	return NoTransition, deadline.Sub(now)
}

// Remaining is the time left before the tracker would turn Idle, or zero.
func (a *ActivityTracker) Remaining(now time.Time) time.Duration {
	if a.classification == Idle {
		return 0
	}
	remaining := a.lastActivityAt.Add(a.Timeout).Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
