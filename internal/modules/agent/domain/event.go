package domain

import (
	"fmt"
	"time"

	sessiondomain "timetrack/internal/modules/session/domain"
	taskdomain "timetrack/internal/modules/task/domain"
)

// Event is the closed set of notifications the runtime publishes.
type Event interface {
	isEvent()
}

type TaskListEvent struct {
	Tasks []taskdomain.Task
}

type UserStateEvent struct {
	State        Classification
	LastActivity time.Time
}

// RepaintEvent asks listeners to redraw after the given delay.
type RepaintEvent struct {
	After time.Duration
}

// ElapsedTimeEvent reports the stopwatch total. Trimmed is non-zero when an
// idle pause backdated the stopwatch, so Elapsed is lower than a previous
// report by up to that amount.
type ElapsedTimeEvent struct {
	Elapsed time.Duration
	Trimmed time.Duration
}

type QuitEvent struct{}

type SessionStateEvent struct {
	InProgress bool
	TaskID     int64
	Running    bool
	Elapsed    time.Duration
}

type SessionSavedEvent struct {
	Session sessiondomain.Session
}

type TaskAddedEvent struct {
	Task taskdomain.Task
}

type ErrorEvent struct {
	Op  string
	Err error
}

func (e ErrorEvent) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e ErrorEvent) Unwrap() error {
	return e.Err
}

func (TaskListEvent) isEvent()     {}
func (UserStateEvent) isEvent()    {}
func (RepaintEvent) isEvent()      {}
func (ElapsedTimeEvent) isEvent()  {}
func (QuitEvent) isEvent()         {}
func (SessionStateEvent) isEvent() {}
func (SessionSavedEvent) isEvent() {}
func (TaskAddedEvent) isEvent()    {}
func (ErrorEvent) isEvent()        {}

// Control is a windowing signal, kept apart from events because it does not
// describe runtime state.
type Control int

const (
	ControlShow Control = iota + 1
	ControlQuit
)

func (c Control) String() string {
	switch c {
	case ControlShow:
		return "show"
	case ControlQuit:
		return "quit"
	default:
		return fmt.Sprintf("Control(%d)", int(c))
	}
}
