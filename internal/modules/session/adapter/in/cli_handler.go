package in

import (
	"context"

	sessiondto "timetrack/internal/modules/session/dto"
	sessionin "timetrack/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, limit int) ([]sessiondto.SessionOutput, error) {
	return h.usecase.List(ctx, limit)
}

func (h CLIHandler) Report(ctx context.Context) (sessiondto.ReportOutput, error) {
	return h.usecase.Report(ctx)
}
