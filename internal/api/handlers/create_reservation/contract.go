package create_reservation

import (
	"context"

	usecase "github.com/kamillakovacs/craftbeerspa/internal/usecase/create_reservation"
)

type CreateReservationUseCase interface {
	Execute(ctx context.Context, req *usecase.Request) (*usecase.Response, error)
}

type MetricsRecorder interface {
	IncReservationsPrepared()
	IncSlotConflicts()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
