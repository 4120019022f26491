package out

import (
	"context"

	"timetrack/internal/modules/session/domain"
)

// SessionStore persists completed sessions. Save is idempotent on Ref so a
// retried save never creates a duplicate row.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) (domain.Session, error)
	List(ctx context.Context, limit int) ([]domain.Record, error)
	Totals(ctx context.Context) ([]domain.TaskTotal, error)
}
