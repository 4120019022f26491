package out

import (
	"context"

	sessiondomain "timetrack/internal/modules/session/domain"
	taskdomain "timetrack/internal/modules/task/domain"
)

// Storage is everything the runtime persists. Calls run on the runtime
// goroutine and are expected to be fast local writes.
type Storage interface {
	SaveSession(ctx context.Context, session sessiondomain.Session) error
	AddTask(ctx context.Context, task taskdomain.Task) (taskdomain.Task, error)
	ListTasks(ctx context.Context) ([]taskdomain.Task, error)
}
