package create_reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
)

// UseCase is the prepare transition: it turns a reservation draft into a
// Prepared reservation and hands the customer off to the payment gateway.
type UseCase struct {
	reservationRepo ReservationRepository
	blackoutRepo    BlackoutRepository
	gateway         PaymentGateway
	txManager       TransactionManager
	policy          domain.BookingPolicy
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the prepare usecase
func NewUseCase(
	reservationRepo ReservationRepository,
	blackoutRepo BlackoutRepository,
	gateway PaymentGateway,
	txManager TransactionManager,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		blackoutRepo:    blackoutRepo,
		gateway:         gateway,
		txManager:       txManager,
		policy:          policy,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute runs the prepare transition. The availability the customer saw is
// advisory; the authoritative slot check runs again inside a serializable
// transaction together with the write, so two concurrent drafts for the same
// slot cannot both commit.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: slot=%s %02d:00, guests=%d, tubs=%d",
		req.Date, req.Hour, req.NumberOfGuests, req.NumberOfTubs)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	if err := validateDate(req.Date, now, uc.policy); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}

	slot := domain.Slot{Date: req.Date, Hour: req.Hour}

	draft := &domain.Reservation{
		TransactionID:  uuid.NewString(),
		Slot:           slot,
		DateOfPurchase: now,
		NumberOfGuests: req.NumberOfGuests,
		NumberOfTubs:   req.NumberOfTubs,
		Price:          req.Price,
		Customer: domain.Customer{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			PhoneNumber: req.PhoneNumber,
			Email:       req.Email,
			Address:     req.Address,
			City:        req.City,
			CountryCode: req.CountryCode,
			PostCode:    req.PostCode,
		},
		Locale:        req.Locale,
		Requirements:  req.Requirements,
		PaymentStatus: domain.StatusPrepared,
		Canceled:      domain.CanceledByNone,
	}
	if draft.Locale == "" {
		draft.Locale = "hu-HU"
	}

	// Cheap advisory check before involving the gateway. Losing the race
	// after this point is still handled by the transactional re-check.
	if err := uc.checkSlot(ctx, slot, now); err != nil {
		uc.logger.Warn("CreateReservation: slot %s unavailable at submit: %v", slot, err)
		return nil, err
	}

	// The gateway call stays outside the transaction. If the slot is lost
	// between here and the commit, the started payment is simply abandoned
	// and expires on the gateway side.
	initiation, err := uc.gateway.Initiate(ctx, draft)
	if err != nil {
		uc.logger.Error("CreateReservation: gateway initiate failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	draft.PaymentID = initiation.PaymentID

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Authoritative occupancy re-read, locked for the duration of the
		// transaction.
		if err := uc.checkSlot(txCtx, slot, now); err != nil {
			return err
		}
		if err := uc.reservationRepo.Create(txCtx, draft); err != nil {
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: prepared payment_id=%s, slot=%s", draft.PaymentID, slot)
	return &Response{
		PaymentID:     draft.PaymentID,
		TransactionID: draft.TransactionID,
		RedirectURL:   initiation.GatewayURL,
		Status:        string(domain.StatusPrepared),
	}, nil
}

// checkSlot rebuilds availability for the slot's date and rejects the slot
// when it is blacked out or occupied. Inside the serializable transaction the
// underlying occupancy read locks the date's rows, making this the
// authoritative check.
func (uc *UseCase) checkSlot(ctx context.Context, slot domain.Slot, now time.Time) error {
	reservations, err := uc.reservationRepo.ListOnDate(ctx, slot.Date)
	if err != nil {
		return fmt.Errorf("%w: failed to list reservations: %w", ErrInternal, err)
	}

	calendar, err := uc.blackoutRepo.GetCalendar(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to load blackout calendar: %w", ErrInternal, err)
	}

	availability := domain.NewAvailability(
		reservations,
		calendar,
		now,
		uc.policy.Location,
		uc.policy.HorizonDays,
		uc.policy.PreparedTTL,
	)

	if calendar.IsDateBlocked(slot.Date) || availability.IsSlotDisabled(slot) {
		return ErrSlotConflict
	}
	return nil
}
