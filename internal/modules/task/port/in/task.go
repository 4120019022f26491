package in

import (
	"context"

	"timetrack/internal/modules/task/dto"
)

type Usecase interface {
	Add(ctx context.Context, input dto.AddInput) (dto.TaskOutput, error)
	List(ctx context.Context) ([]dto.TaskOutput, error)
}
