package dto

import "time"

type AddInput struct {
	Name     string
	Priority string
}

type TaskOutput struct {
	ID        int64
	Name      string
	Priority  string
	CreatedAt time.Time
}
