package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "timetrack/internal/platform/errors"
)

// Session is one timed interval of work against a task. DurationSeconds
// counts active time only; the span between StartedAt and EndedAt may be
// longer because idle time is excluded.
type Session struct {
	ID              int64
	Ref             string
	TaskID          int64
	UserID          int64
	DurationSeconds uint64
	Comment         string
	StartedAt       time.Time
	EndedAt         time.Time
}

func (s Session) Duration() time.Duration {
	return time.Duration(s.DurationSeconds) * time.Second
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.Ref) == "" {
		return fmt.Errorf("%w: session ref is required", apperrors.ErrInvalidInput)
	}
	if s.TaskID <= 0 {
		return fmt.Errorf("%w: session task id must be positive", apperrors.ErrInvalidInput)
	}
	if s.UserID <= 0 {
		return fmt.Errorf("%w: session user id must be positive", apperrors.ErrInvalidInput)
	}
	return nil
}

// Record is a persisted session joined with its task name.
type Record struct {
	Session
	TaskName string
}

type TaskTotal struct {
	TaskID       int64
	TaskName     string
	Sessions     int
	TotalSeconds uint64
}
