package reservations

import (
	"context"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
)

// ReservationRepository is the reservation store interface the service needs
type ReservationRepository interface {
	GetByPaymentID(ctx context.Context, paymentID string) (*domain.Reservation, error)
	ListAfter(ctx context.Context, fromDateKey string) ([]*domain.Reservation, error)
	ListOnDate(ctx context.Context, dateKey string) ([]*domain.Reservation, error)
}

// Logger is the logging interface the service depends on
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
