package usecase

import (
	"context"
	"strings"

	"timetrack/internal/modules/task/domain"
	"timetrack/internal/modules/task/dto"
	taskin "timetrack/internal/modules/task/port/in"
	taskout "timetrack/internal/modules/task/port/out"
	"timetrack/internal/platform/clock"
)

type Interactor struct {
	store taskout.TaskStore
	clock clock.Clock
}

func NewInteractor(store taskout.TaskStore, clk clock.Clock) taskin.Usecase {
	return &Interactor{store: store, clock: clk}
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.TaskOutput, error) {
	priority := domain.PriorityLow
	if strings.TrimSpace(input.Priority) != "" {
		parsed, err := domain.ParsePriority(input.Priority)
		if err != nil {
			return dto.TaskOutput{}, err
		}
		priority = parsed
	}
	task := domain.Task{
		Name:      strings.TrimSpace(input.Name),
		Priority:  priority,
		CreatedAt: i.clock.Now(),
	}
	if err := task.Validate(); err != nil {
		return dto.TaskOutput{}, err
	}
	added, err := i.store.Add(ctx, task)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return toOutput(added), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.TaskOutput, error) {
	tasks, err := i.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskOutput, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, toOutput(task))
	}
	return out, nil
}

func toOutput(task domain.Task) dto.TaskOutput {
	return dto.TaskOutput{
		ID:        task.ID,
		Name:      task.Name,
		Priority:  task.Priority.String(),
		CreatedAt: task.CreatedAt,
	}
}
