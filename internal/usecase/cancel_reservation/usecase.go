package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
	"github.com/kamillakovacs/craftbeerspa/internal/infra/storage/reservation"
)

// UseCase is the cancel transition: a succeeded reservation is marked
// canceled, which releases its slot for new bookings.
type UseCase struct {
	reservationRepo ReservationRepository
	notifier        Notifier
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase creates the cancel usecase
func NewUseCase(
	reservationRepo ReservationRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		notifier:        notifier,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute runs the cancel transition. The slot is released implicitly: the
// availability engine skips canceled reservations, so no separate slot write
// is needed.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: payment_id=%s, reason=%s", req.PaymentID, req.Reason)

	if req.PaymentID == "" {
		return nil, fmt.Errorf("%w: paymentId is required", ErrInvalidInput)
	}
	by, err := canceledBy(req.Reason)
	if err != nil {
		return nil, err
	}

	var canceled *domain.Reservation

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		res, err := uc.reservationRepo.GetByPaymentID(txCtx, req.PaymentID)
		if err != nil {
			if errors.Is(err, reservation.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to load reservation: %w", ErrInternal, err)
		}

		if res.IsCanceled() {
			return ErrAlreadyCanceled
		}
		if !res.CanBeCancelled() {
			if res.Uncancelable {
				return fmt.Errorf("%w: reservation is flagged uncancelable", ErrNotCancelable)
			}
			return fmt.Errorf("%w: payment status is %s", ErrNotCancelable, res.PaymentStatus)
		}

		if err := uc.reservationRepo.Cancel(txCtx, req.PaymentID, by); err != nil {
			return fmt.Errorf("%w: failed to cancel reservation: %w", ErrInternal, err)
		}

		res.Canceled = by
		res.PaymentStatus = domain.StatusCanceled
		canceled = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	go uc.notifier.DispatchCancelation(context.WithoutCancel(ctx), canceled)

	uc.logger.Info("CancelReservation: payment_id=%s canceled by %s, slot %s released",
		req.PaymentID, by, canceled.Slot)
	return &Response{
		PaymentID: canceled.PaymentID,
		Status:    string(canceled.PaymentStatus),
		Canceled:  string(canceled.Canceled),
	}, nil
}

func canceledBy(reason string) (domain.CanceledBy, error) {
	switch domain.CanceledBy(reason) {
	case domain.CanceledByUser, domain.CanceledByPhoneCall, domain.CanceledByAdmin:
		return domain.CanceledBy(reason), nil
	default:
		return "", fmt.Errorf("%w: unknown cancel reason %q", ErrInvalidInput, reason)
	}
}
