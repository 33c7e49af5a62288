package confirm_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
	"github.com/kamillakovacs/craftbeerspa/internal/infra/storage/reservation"
	"github.com/kamillakovacs/craftbeerspa/internal/integrations/barion"
)

// UseCase is the confirm transition: the gateway reports the payment final,
// the reservation moves from Prepared to Succeeded, and the confirmation side
// effects are dispatched.
type UseCase struct {
	reservationRepo ReservationRepository
	gateway         PaymentGateway
	notifier        Notifier
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase creates the confirm usecase
func NewUseCase(
	reservationRepo ReservationRepository,
	gateway PaymentGateway,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		gateway:         gateway,
		notifier:        notifier,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute runs the confirm transition. The gateway is the source of truth for
// the payment outcome, so its state is verified before the reservation is
// touched. Repeated callbacks for an already succeeded reservation are a
// no-op; emails and the receipt are guarded by the communication flags and
// are never sent twice.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: payment_id=%s", req.PaymentID)

	if req.PaymentID == "" {
		return nil, fmt.Errorf("%w: paymentId is required", ErrInvalidInput)
	}

	state, err := uc.gateway.GetPaymentState(ctx, req.PaymentID)
	if err != nil {
		// Leave the reservation prepared; the gateway retries its callback.
		uc.logger.Error("ConfirmPayment: gateway state lookup failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if state.Status != barion.StateSucceeded {
		uc.logger.Warn("ConfirmPayment: payment_id=%s not completed, gateway status=%s",
			req.PaymentID, state.Status)
		return nil, fmt.Errorf("%w: gateway status %s", ErrPaymentNotCompleted, state.Status)
	}

	var confirmed *domain.Reservation

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		res, err := uc.reservationRepo.GetByPaymentID(txCtx, req.PaymentID)
		if err != nil {
			if errors.Is(err, reservation.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to load reservation: %w", ErrInternal, err)
		}

		if req.TransactionID != "" && req.TransactionID != res.TransactionID {
			uc.logger.Warn("ConfirmPayment: transaction id mismatch for payment_id=%s", req.PaymentID)
		}

		if res.IsCanceled() {
			return ErrReservationCanceled
		}

		if !res.IsSucceeded() {
			if err := uc.reservationRepo.UpdatePaymentStatus(txCtx, req.PaymentID, domain.StatusSucceeded); err != nil {
				return fmt.Errorf("%w: failed to update payment status: %w", ErrInternal, err)
			}
			res.PaymentStatus = domain.StatusSucceeded
		}

		confirmed = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Side effects run after the commit so a mail or invoicing outage cannot
	// roll back the confirmation. The notifier checks the communication flags
	// itself, which makes repeated callbacks safe.
	go uc.notifier.DispatchConfirmation(context.WithoutCancel(ctx), confirmed)

	uc.logger.Info("ConfirmPayment: payment_id=%s confirmed, slot=%s", req.PaymentID, confirmed.Slot)
	return &Response{
		PaymentID: confirmed.PaymentID,
		Status:    string(confirmed.PaymentStatus),
	}, nil
}
