package confirm_payment

import (
	"context"

	usecase "github.com/kamillakovacs/craftbeerspa/internal/usecase/confirm_payment"
)

type ConfirmPaymentUseCase interface {
	Execute(ctx context.Context, req *usecase.Request) (*usecase.Response, error)
}

type MetricsRecorder interface {
	IncPaymentsConfirmed()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
