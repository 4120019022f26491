package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "timetrack/internal/platform/errors"
)

type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

var priorityNames = [...]string{"Low", "Medium", "High"}

func (p Priority) String() string {
	if p.Valid() {
		return priorityNames[p]
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// ParsePriority accepts a level name (case-insensitive) or its index.
func ParsePriority(raw string) (Priority, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for i, name := range priorityNames {
		if value == strings.ToLower(name) || value == fmt.Sprint(i) {
			return Priority(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", apperrors.ErrUnknownPriority, raw)
}

type Task struct {
	ID        int64
	Name      string
	Priority  Priority
	CreatedAt time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: task name is required", apperrors.ErrInvalidInput)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: %d", apperrors.ErrUnknownPriority, int(t.Priority))
	}
	return nil
}
