package out

import (
	"context"

	"timetrack/internal/modules/task/domain"
)

// TaskStore lists tasks in insertion order.
type TaskStore interface {
	Add(ctx context.Context, task domain.Task) (domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
}
