package reschedule_reservation

import (
	"context"
	"time"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
)

// ReservationRepository is the reservation store interface the usecase needs
type ReservationRepository interface {
	GetByPaymentID(ctx context.Context, paymentID string) (*domain.Reservation, error)
	ListOnDate(ctx context.Context, dateKey string) ([]*domain.Reservation, error)
	UpdateSlot(ctx context.Context, paymentID string, slot domain.Slot) error
}

// BlackoutRepository loads the operator blackout calendar
type BlackoutRepository interface {
	GetCalendar(ctx context.Context) (*domain.BlackoutCalendar, error)
}

// Notifier dispatches the reschedule email. Best effort.
type Notifier interface {
	DispatchReschedule(ctx context.Context, res *domain.Reservation, previous domain.Slot)
}

// TransactionManager serializes the slot move against concurrent prepares
// and reschedules targeting the same slot
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider abstracts the clock for testability
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider implements TimeProvider with the system clock
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger is the logging interface the usecase depends on
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
