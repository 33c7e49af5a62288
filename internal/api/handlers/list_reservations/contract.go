package list_reservations

import (
	"context"
	"time"

	"github.com/kamillakovacs/craftbeerspa/internal/service/reservations/models"
)

type ReservationService interface {
	ListUpcoming(ctx context.Context, now time.Time) (*models.ReservationListResponse, error)
	ListOnDate(ctx context.Context, dateKey string) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
