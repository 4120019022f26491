package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"timetrack/internal/modules/task/domain"
	taskout "timetrack/internal/modules/task/port/out"
	"timetrack/internal/platform/sqlitedb"
)

type SQLiteTaskStore struct {
	db *sql.DB
}

func NewSQLiteTaskStore(db *sql.DB) taskout.TaskStore {
	return &SQLiteTaskStore{db: db}
}

func (s *SQLiteTaskStore) Add(ctx context.Context, task domain.Task) (domain.Task, error) {
	if err := task.Validate(); err != nil {
		return domain.Task{}, err
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	const stmt = `INSERT INTO tasks (name, priority, created_at) VALUES (?, ?, ?);`
	result, err := s.db.ExecContext(ctx, stmt, task.Name, int(task.Priority), task.CreatedAt.UTC().Format(sqlitedb.TimeLayout))
	if err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return domain.Task{}, fmt.Errorf("task id: %w", err)
	}
	task.ID = id
	return task, nil
}

func (s *SQLiteTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, priority, created_at FROM tasks ORDER BY id ASC;`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		var (
			task      domain.Task
			priority  int
			createdAt string
		)
		if err := rows.Scan(&task.ID, &task.Name, &priority, &createdAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		task.Priority = domain.Priority(priority)
		task.CreatedAt, _ = time.Parse(sqlitedb.TimeLayout, createdAt)
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}
