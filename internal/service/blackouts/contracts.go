package blackouts

import (
	"context"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
)

// BlackoutRepository persists the blackout calendar
type BlackoutRepository interface {
	GetCalendar(ctx context.Context) (*domain.BlackoutCalendar, error)
	BlockDate(ctx context.Context, dateKey string) error
	UnblockDate(ctx context.Context, dateKey string) error
	BlockSlot(ctx context.Context, slot domain.Slot) error
	UnblockSlot(ctx context.Context, slot domain.Slot) error
}

// Logger is the logging interface the service depends on
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
