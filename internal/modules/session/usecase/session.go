package usecase

import (
	"context"
	"time"

	sessiondto "timetrack/internal/modules/session/dto"
	sessionin "timetrack/internal/modules/session/port/in"
	sessionout "timetrack/internal/modules/session/port/out"
)

type Interactor struct {
	store sessionout.SessionStore
}

func NewInteractor(store sessionout.SessionStore) sessionin.Usecase {
	return &Interactor{store: store}
}

func (i *Interactor) List(ctx context.Context, limit int) ([]sessiondto.SessionOutput, error) {
	records, err := i.store.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.SessionOutput, 0, len(records))
	for _, r := range records {
		out = append(out, sessiondto.SessionOutput{
			ID:        r.ID,
			TaskID:    r.TaskID,
			TaskName:  r.TaskName,
			UserID:    r.UserID,
			Duration:  r.Duration(),
			Comment:   r.Comment,
			StartedAt: r.StartedAt,
			EndedAt:   r.EndedAt,
		})
	}
	return out, nil
}

func (i *Interactor) Report(ctx context.Context) (sessiondto.ReportOutput, error) {
	totals, err := i.store.Totals(ctx)
	if err != nil {
		return sessiondto.ReportOutput{}, err
	}
	report := sessiondto.ReportOutput{Tasks: make([]sessiondto.TaskTotalOutput, 0, len(totals))}
	for _, total := range totals {
		d := secondsToDuration(total.TotalSeconds)
		report.Tasks = append(report.Tasks, sessiondto.TaskTotalOutput{
			TaskID:   total.TaskID,
			TaskName: total.TaskName,
			Sessions: total.Sessions,
			Total:    d,
		})
		report.Total += d
	}
	return report, nil
}

func secondsToDuration(s uint64) time.Duration {
	return time.Duration(s) * time.Second
}
