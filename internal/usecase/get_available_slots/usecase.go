package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
)

// UseCase computes the bookable calendar for the reservation UI
type UseCase struct {
	reservationRepo ReservationRepository
	blackoutRepo    BlackoutRepository
	policy          domain.BookingPolicy
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the availability usecase
func NewUseCase(
	reservationRepo ReservationRepository,
	blackoutRepo BlackoutRepository,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		blackoutRepo:    blackoutRepo,
		policy:          policy,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute returns per-day and per-slot availability for the booking horizon.
// The answer is advisory: the authoritative check happens again inside the
// prepare and reschedule transactions.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Days < 0 {
		return nil, fmt.Errorf("%w: days must not be negative", ErrInvalidInput)
	}

	days := req.Days
	if days == 0 || days > uc.policy.HorizonDays {
		days = uc.policy.HorizonDays
	}

	now := uc.timeProvider.Now()
	todayKey := domain.DateKey(now, uc.policy.Location)

	reservations, err := uc.reservationRepo.ListAfter(ctx, todayKey)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	calendar, err := uc.blackoutRepo.GetCalendar(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load blackout calendar: %v", err)
		return nil, fmt.Errorf("%w: failed to load blackout calendar: %v", ErrInternal, err)
	}

	availability := domain.NewAvailability(
		reservations,
		calendar,
		now,
		uc.policy.Location,
		uc.policy.HorizonDays,
		uc.policy.PreparedTTL,
	)

	today, err := time.ParseInLocation(domain.DateFormat, todayKey, uc.policy.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse today: %v", ErrInternal, err)
	}

	resp := &Response{Days: make([]Day, 0, days)}
	for i := 1; i <= days; i++ {
		dateKey := today.AddDate(0, 0, i).Format(domain.DateFormat)

		day := Day{
			Date:     dateKey,
			Disabled: availability.IsDateDisabled(dateKey),
			Slots:    make([]SlotStatus, 0, len(domain.CanonicalHours)),
		}
		for _, hour := range domain.CanonicalHours {
			day.Slots = append(day.Slots, SlotStatus{
				Hour:     hour,
				Disabled: day.Disabled || availability.IsSlotDisabled(domain.Slot{Date: dateKey, Hour: hour}),
			})
		}
		resp.Days = append(resp.Days, day)
	}

	uc.logger.Info("GetAvailableSlots: computed %d days from %s", len(resp.Days), todayKey)
	return resp, nil
}
