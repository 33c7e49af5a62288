package cancel_reservation

import (
	"context"

	usecase "github.com/kamillakovacs/craftbeerspa/internal/usecase/cancel_reservation"
)

type CancelReservationUseCase interface {
	Execute(ctx context.Context, req *usecase.Request) (*usecase.Response, error)
}

type MetricsRecorder interface {
	IncReservationsCanceled(reason string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
