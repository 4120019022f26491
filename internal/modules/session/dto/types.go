package dto

import "time"

type SessionOutput struct {
	ID        int64
	TaskID    int64
	TaskName  string
	UserID    int64
	Duration  time.Duration
	Comment   string
	StartedAt time.Time
	EndedAt   time.Time
}

type TaskTotalOutput struct {
	TaskID   int64
	TaskName string
	Sessions int
	Total    time.Duration
}

type ReportOutput struct {
	Tasks []TaskTotalOutput
	Total time.Duration
}
