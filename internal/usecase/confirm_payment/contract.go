package confirm_payment

import (
	"context"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
	"github.com/kamillakovacs/craftbeerspa/internal/integrations/barion"
)

// ReservationRepository is the reservation store interface the usecase needs
type ReservationRepository interface {
	GetByPaymentID(ctx context.Context, paymentID string) (*domain.Reservation, error)
	UpdatePaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus) error
}

// PaymentGateway verifies the gateway-side payment state
type PaymentGateway interface {
	GetPaymentState(ctx context.Context, paymentID string) (*barion.PaymentState, error)
}

// Notifier dispatches the post-confirmation side effects (customer and
// operator emails, receipt issuance). Best effort: it logs and records its
// own progress and never fails the confirmation.
type Notifier interface {
	DispatchConfirmation(ctx context.Context, res *domain.Reservation)
}

// TransactionManager serializes the state transition against other
// operations on the same reservation
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface the usecase depends on
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
