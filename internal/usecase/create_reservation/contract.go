package create_reservation

import (
	"context"
	"time"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
	"github.com/kamillakovacs/craftbeerspa/internal/integrations/barion"
)

// ReservationRepository is the reservation store interface the usecase needs
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	ListOnDate(ctx context.Context, dateKey string) ([]*domain.Reservation, error)
}

// BlackoutRepository is the blackout calendar store interface
type BlackoutRepository interface {
	GetCalendar(ctx context.Context) (*domain.BlackoutCalendar, error)
}

// PaymentGateway starts the payment and assigns the payment identifier
type PaymentGateway interface {
	Initiate(ctx context.Context, res *domain.Reservation) (*barion.PaymentInitiation, error)
}

// TransactionManager runs the check-and-reserve sequence atomically
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (swapped out in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface the usecase depends on
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time provider
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
