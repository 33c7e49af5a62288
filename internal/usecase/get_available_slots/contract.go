package get_available_slots

import (
	"context"
	"time"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
)

// ReservationRepository is the reservation store interface the usecase needs
type ReservationRepository interface {
	ListAfter(ctx context.Context, fromDateKey string) ([]*domain.Reservation, error)
}

// BlackoutRepository is the blackout calendar store interface
type BlackoutRepository interface {
	GetCalendar(ctx context.Context) (*domain.BlackoutCalendar, error)
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
