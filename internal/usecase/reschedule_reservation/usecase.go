package reschedule_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
	"github.com/kamillakovacs/craftbeerspa/internal/infra/storage/reservation"
)

// UseCase is the reschedule transition: a succeeded reservation moves to a
// new slot, releasing the old one in the same step.
type UseCase struct {
	reservationRepo ReservationRepository
	blackoutRepo    BlackoutRepository
	notifier        Notifier
	txManager       TransactionManager
	policy          domain.BookingPolicy
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the reschedule usecase
func NewUseCase(
	reservationRepo ReservationRepository,
	blackoutRepo BlackoutRepository,
	notifier Notifier,
	txManager TransactionManager,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		blackoutRepo:    blackoutRepo,
		notifier:        notifier,
		txManager:       txManager,
		policy:          policy,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute runs the reschedule transition. The target slot check and the slot
// write share one serializable transaction; when the target is taken nothing
// changes and the reservation keeps its current slot.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleReservation: payment_id=%s, target=%s %02d:00",
		req.PaymentID, req.Date, req.Hour)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	if err := validateDate(req.Date, now, uc.policy); err != nil {
		uc.logger.Warn("RescheduleReservation: date validation failed: %v", err)
		return nil, err
	}

	target := domain.Slot{Date: req.Date, Hour: req.Hour}

	var moved *domain.Reservation
	var previous domain.Slot

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		res, err := uc.reservationRepo.GetByPaymentID(txCtx, req.PaymentID)
		if err != nil {
			if errors.Is(err, reservation.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to load reservation: %w", ErrInternal, err)
		}

		if !res.CanBeRescheduled() {
			if res.IsCanceled() {
				return fmt.Errorf("%w: reservation is canceled", ErrNotReschedulable)
			}
			return fmt.Errorf("%w: payment status is %s", ErrNotReschedulable, res.PaymentStatus)
		}

		if res.Slot == target {
			return fmt.Errorf("%w: reservation already holds this slot", ErrInvalidInput)
		}

		if err := uc.checkTargetSlot(txCtx, target, res.PaymentID, now); err != nil {
			return err
		}

		if err := uc.reservationRepo.UpdateSlot(txCtx, req.PaymentID, target); err != nil {
			return fmt.Errorf("%w: failed to move reservation: %w", ErrInternal, err)
		}

		previous = res.Slot
		res.Slot = target
		res.Communication.RescheduleEmailSentCount++
		moved = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	go uc.notifier.DispatchReschedule(context.WithoutCancel(ctx), moved, previous)

	uc.logger.Info("RescheduleReservation: payment_id=%s moved %s -> %s",
		req.PaymentID, previous, target)
	return &Response{
		PaymentID:    moved.PaymentID,
		Date:         target.Date,
		Hour:         target.Hour,
		PreviousDate: previous.Date,
		PreviousHour: previous.Hour,
	}, nil
}

// checkTargetSlot rebuilds availability for the target date with the moving
// reservation excluded, so a move within the same date never collides with
// itself. The occupancy read locks the date's rows for the transaction.
func (uc *UseCase) checkTargetSlot(ctx context.Context, target domain.Slot, paymentID string, now time.Time) error {
	onDate, err := uc.reservationRepo.ListOnDate(ctx, target.Date)
	if err != nil {
		return fmt.Errorf("%w: failed to list reservations: %w", ErrInternal, err)
	}

	others := make([]*domain.Reservation, 0, len(onDate))
	for _, res := range onDate {
		if res.PaymentID != paymentID {
			others = append(others, res)
		}
	}

	calendar, err := uc.blackoutRepo.GetCalendar(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to load blackout calendar: %w", ErrInternal, err)
	}

	availability := domain.NewAvailability(
		others,
		calendar,
		now,
		uc.policy.Location,
		uc.policy.HorizonDays,
		uc.policy.PreparedTTL,
	)

	if calendar.IsDateBlocked(target.Date) || availability.IsSlotDisabled(target) {
		return ErrSlotConflict
	}
	return nil
}

// validateRequest checks the request shape
func validateRequest(req *Request) error {
	if req.PaymentID == "" {
		return fmt.Errorf("%w: paymentId is required", ErrInvalidInput)
	}
	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}
	if !(domain.Slot{Date: req.Date, Hour: req.Hour}).IsCanonical() {
		return fmt.Errorf("%w: hour %d is not a bookable time", ErrInvalidInput, req.Hour)
	}
	return nil
}

// validateDate checks the target date against the no-same-day rule and the
// booking horizon
func validateDate(dateKey string, now time.Time, policy domain.BookingPolicy) error {
	day, err := time.ParseInLocation(domain.DateFormat, dateKey, policy.Location)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	today, err := time.ParseInLocation(domain.DateFormat, domain.DateKey(now, policy.Location), policy.Location)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if !day.After(today) {
		return ErrInvalidDate
	}
	if day.After(today.AddDate(0, 0, policy.HorizonDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrInvalidDate, policy.HorizonDays)
	}
	return nil
}
