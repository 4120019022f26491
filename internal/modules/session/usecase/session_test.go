package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"timetrack/internal/modules/session/domain"
	"timetrack/internal/modules/session/usecase"
)

type fakeStore struct {
	records []domain.Record
	totals  []domain.TaskTotal
	err     error
	limit   int
}

func (f *fakeStore) Save(_ context.Context, s domain.Session) (domain.Session, error) {
	return s, f.err
}

func (f *fakeStore) List(_ context.Context, limit int) ([]domain.Record, error) {
	f.limit = limit
	return f.records, f.err
}

func (f *fakeStore) Totals(context.Context) ([]domain.TaskTotal, error) {
	return f.totals, f.err
}

func TestListMapsRecords(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC)
	store := &fakeStore{records: []domain.Record{{
		Session:  domain.Session{ID: 9, TaskID: 2, UserID: 1, DurationSeconds: 75, Comment: "pairing", StartedAt: start, EndedAt: start.Add(5 * time.Minute)},
		TaskName: "onboarding",
	}}}
	uc := usecase.NewInteractor(store)

	out, err := uc.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if store.limit != 10 {
		t.Fatalf("expected limit to pass through, got %d", store.limit)
	}
	if len(out) != 1 || out[0].Duration != 75*time.Second || out[0].TaskName != "onboarding" {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestReportSumsTotals(t *testing.T) {
	t.Parallel()
	store := &fakeStore{totals: []domain.TaskTotal{
		{TaskID: 1, TaskName: "a", Sessions: 2, TotalSeconds: 600},
		{TaskID: 2, TaskName: "b", Sessions: 1, TotalSeconds: 30},
	}}
	report, err := usecase.NewInteractor(store).Report(context.Background())
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Total != 630*time.Second {
		t.Fatalf("expected 630s total, got %s", report.Total)
	}
	if len(report.Tasks) != 2 || report.Tasks[0].Total != 10*time.Minute {
		t.Fatalf("unexpected per-task totals: %+v", report.Tasks)
	}
}

func TestReportPropagatesStoreError(t *testing.T) {
	t.Parallel()
	boom := errors.New("disk gone")
	if _, err := usecase.NewInteractor(&fakeStore{err: boom}).Report(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}
