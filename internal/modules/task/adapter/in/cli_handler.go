package in

import (
	"context"

	"timetrack/internal/modules/task/dto"
	taskin "timetrack/internal/modules/task/port/in"
)

type CLIHandler struct {
	usecase taskin.Usecase
}

func NewCLIHandler(usecase taskin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, name, priority string) (dto.TaskOutput, error) {
	return h.usecase.Add(ctx, dto.AddInput{Name: name, Priority: priority})
}

func (h CLIHandler) List(ctx context.Context) ([]dto.TaskOutput, error) {
	return h.usecase.List(ctx)
}
