package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"timetrack/internal/modules/session/domain"
	sessionout "timetrack/internal/modules/session/port/out"
	apperrors "timetrack/internal/platform/errors"
	"timetrack/internal/platform/sqlitedb"
	"timetrack/internal/platform/tx"
)

type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(db *sql.DB) sessionout.SessionStore {
	return &SQLiteSessionStore{db: db}
}

// Save is idempotent on Ref: a retried session resolves to the row written by
// the first successful attempt. Constraint violations, such as an unknown
// task, are reported as ErrInvalidInput.
func (s *SQLiteSessionStore) Save(ctx context.Context, session domain.Session) (domain.Session, error) {
	if err := session.Validate(); err != nil {
		return domain.Session{}, err
	}
	const insertSession = `
INSERT INTO sessions (ref, task_id, user_id, duration_seconds, comment, started_at, ended_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(ref) DO NOTHING;
`
	err := tx.Within(ctx, s.db, func(dbtx *sql.Tx) error {
		now := time.Now().UTC().Format(sqlitedb.TimeLayout)
		if _, err := dbtx.ExecContext(ctx, `INSERT INTO users (id, created_at) VALUES (?, ?) ON CONFLICT(id) DO NOTHING;`, session.UserID, now); err != nil {
			return fmt.Errorf("ensure user: %w", err)
		}
		if _, err := dbtx.ExecContext(ctx, insertSession,
			session.Ref,
			session.TaskID,
			session.UserID,
			int64(session.DurationSeconds),
			session.Comment,
			session.StartedAt.UTC().Format(sqlitedb.TimeLayout),
			session.EndedAt.UTC().Format(sqlitedb.TimeLayout),
		); err != nil {
			if sqlitedb.IsConstraint(err) {
				return fmt.Errorf("%w: insert session for task %d: %v", apperrors.ErrInvalidInput, session.TaskID, err)
			}
			return fmt.Errorf("insert session: %w", err)
		}
		if err := dbtx.QueryRowContext(ctx, `SELECT id FROM sessions WHERE ref = ?;`, session.Ref).Scan(&session.ID); err != nil {
			return fmt.Errorf("read session id: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (s *SQLiteSessionStore) List(ctx context.Context, limit int) ([]domain.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT s.id, s.ref, s.task_id, s.user_id, s.duration_seconds, s.comment, s.started_at, s.ended_at, t.name
FROM sessions s
JOIN tasks t ON t.id = s.task_id
ORDER BY s.id DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	records := []domain.Record{}
	for rows.Next() {
		var (
			record             domain.Record
			duration           int64
			startedAt, endedAt string
		)
		if err := rows.Scan(&record.ID, &record.Ref, &record.TaskID, &record.UserID, &duration, &record.Comment, &startedAt, &endedAt, &record.TaskName); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if duration > 0 {
			record.DurationSeconds = uint64(duration)
		}
		record.StartedAt, _ = time.Parse(sqlitedb.TimeLayout, startedAt)
		record.EndedAt, _ = time.Parse(sqlitedb.TimeLayout, endedAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return records, nil
}

func (s *SQLiteSessionStore) Totals(ctx context.Context) ([]domain.TaskTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT t.id, t.name, COUNT(s.id), COALESCE(SUM(s.duration_seconds), 0)
FROM tasks t
JOIN sessions s ON s.task_id = t.id
GROUP BY t.id, t.name
ORDER BY t.id ASC;
`)
	if err != nil {
		return nil, fmt.Errorf("session totals: %w", err)
	}
	defer rows.Close()

	totals := []domain.TaskTotal{}
	for rows.Next() {
		var (
			total   domain.TaskTotal
			seconds int64
		)
		if err := rows.Scan(&total.TaskID, &total.TaskName, &total.Sessions, &seconds); err != nil {
			return nil, fmt.Errorf("scan total: %w", err)
		}
		if seconds > 0 {
			total.TotalSeconds = uint64(seconds)
		}
		totals = append(totals, total)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate totals: %w", err)
	}
	return totals, nil
}
