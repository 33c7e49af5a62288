package get_reservation

import (
	"context"

	"github.com/kamillakovacs/craftbeerspa/internal/service/reservations/models"
)

type ReservationService interface {
	GetByPaymentID(ctx context.Context, paymentID string) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
