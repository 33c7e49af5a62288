package cancel_reservation

import (
	"context"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
)

// ReservationRepository is the reservation store interface the usecase needs
type ReservationRepository interface {
	GetByPaymentID(ctx context.Context, paymentID string) (*domain.Reservation, error)
	Cancel(ctx context.Context, paymentID string, by domain.CanceledBy) error
}

// Notifier dispatches the cancelation email. Best effort; the sweep job
// retries anything that did not go out.
type Notifier interface {
	DispatchCancelation(ctx context.Context, res *domain.Reservation)
}

// TransactionManager serializes the cancel against other lifecycle
// transitions on the same reservation
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface the usecase depends on
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
