package reschedule_reservation

import (
	"context"

	usecase "github.com/kamillakovacs/craftbeerspa/internal/usecase/reschedule_reservation"
)

type RescheduleReservationUseCase interface {
	Execute(ctx context.Context, req *usecase.Request) (*usecase.Response, error)
}

type MetricsRecorder interface {
	IncReservationsRescheduled()
	IncSlotConflicts()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
