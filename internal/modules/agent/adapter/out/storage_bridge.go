package out

import (
	"context"
	"fmt"

	agentout "timetrack/internal/modules/agent/port/out"
	sessiondomain "timetrack/internal/modules/session/domain"
	sessionout "timetrack/internal/modules/session/port/out"
	taskdomain "timetrack/internal/modules/task/domain"
	taskout "timetrack/internal/modules/task/port/out"
)

// StorageBridge adapts the task and session stores to the runtime's storage
// port. Both stores share one database handle.
type StorageBridge struct {
	tasks    taskout.TaskStore
	sessions sessionout.SessionStore
}

func NewStorageBridge(tasks taskout.TaskStore, sessions sessionout.SessionStore) agentout.Storage {
	return &StorageBridge{tasks: tasks, sessions: sessions}
}

func (b *StorageBridge) SaveSession(ctx context.Context, session sessiondomain.Session) error {
	if _, err := b.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("save session %s: %w", session.Ref, err)
	}
	return nil
}

func (b *StorageBridge) AddTask(ctx context.Context, task taskdomain.Task) (taskdomain.Task, error) {
	return b.tasks.Add(ctx, task)
}

func (b *StorageBridge) ListTasks(ctx context.Context) ([]taskdomain.Task, error) {
	return b.tasks.List(ctx)
}
