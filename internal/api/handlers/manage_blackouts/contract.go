package manage_blackouts

import (
	"context"

	"github.com/kamillakovacs/craftbeerspa/internal/service/blackouts/models"
)

type BlackoutService interface {
	GetCalendar(ctx context.Context) (*models.CalendarResponse, error)
	BlockDate(ctx context.Context, dateKey string) error
	UnblockDate(ctx context.Context, dateKey string) error
	BlockSlot(ctx context.Context, dateKey string, hour int) error
	UnblockSlot(ctx context.Context, dateKey string, hour int) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
