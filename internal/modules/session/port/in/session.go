package in

import (
	"context"

	"timetrack/internal/modules/session/dto"
)

type Usecase interface {
	List(ctx context.Context, limit int) ([]dto.SessionOutput, error)
	Report(ctx context.Context) (dto.ReportOutput, error)
}
