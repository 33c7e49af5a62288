package notifications

import (
	"context"
	"fmt"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
	"github.com/kamillakovacs/craftbeerspa/internal/integrations/mailersend"
)

// Service delivers reservation emails and receipts. Every dispatch is
// best effort and idempotent: delivery progress is recorded on the
// reservation row, and the sweep job retries whatever is still missing.
type Service struct {
	mailer          Mailer
	invoicer        Invoicer
	reservationRepo ReservationRepository
	metrics         MetricsRecorder
	cfg             Config
	logger          Logger
}

// NewService creates the notifications service
func NewService(
	mailer Mailer,
	invoicer Invoicer,
	reservationRepo ReservationRepository,
	metrics MetricsRecorder,
	cfg Config,
	logger Logger,
) *Service {
	return &Service{
		mailer:          mailer,
		invoicer:        invoicer,
		reservationRepo: reservationRepo,
		metrics:         metrics,
		cfg:             cfg,
		logger:          logger,
	}
}

// DispatchConfirmation sends the confirmation email pair and issues the
// receipt for a freshly confirmed reservation. Each step first claims its
// communication flag with a compare-and-set write, so concurrent dispatches
// for one payment (the customer redirect and the gateway callback race) send
// at most one email and issue at most one receipt. A claim is released when
// the delivery fails, which keeps the sweep job's retry path open.
func (s *Service) DispatchConfirmation(ctx context.Context, res *domain.Reservation) {
	if !res.Communication.ReservationEmailSent {
		s.dispatchConfirmationEmail(ctx, res)
	}

	if !res.Communication.ReceiptSent {
		s.dispatchReceipt(ctx, res)
	}
}

func (s *Service) dispatchConfirmationEmail(ctx context.Context, res *domain.Reservation) {
	claimed, err := s.reservationRepo.ClaimReservationEmail(ctx, res.PaymentID)
	if err != nil {
		s.logger.Error("DispatchConfirmation: failed to claim email flag for payment_id=%s: %v",
			res.PaymentID, err)
		return
	}
	if !claimed {
		res.Communication.ReservationEmailSent = true
		return
	}

	if err := s.sendConfirmationEmails(ctx, res); err != nil {
		s.logger.Error("DispatchConfirmation: payment_id=%s: %v", res.PaymentID, err)
		if relErr := s.reservationRepo.ReleaseReservationEmail(ctx, res.PaymentID); relErr != nil {
			s.logger.Error("DispatchConfirmation: failed to release email flag for payment_id=%s: %v",
				res.PaymentID, relErr)
		}
		return
	}
	res.Communication.ReservationEmailSent = true
}

func (s *Service) dispatchReceipt(ctx context.Context, res *domain.Reservation) {
	claimed, err := s.reservationRepo.ClaimReceipt(ctx, res.PaymentID)
	if err != nil {
		s.logger.Error("DispatchConfirmation: failed to claim receipt flag for payment_id=%s: %v",
			res.PaymentID, err)
		return
	}
	if !claimed {
		res.Communication.ReceiptSent = true
		return
	}

	if err := s.issueReceipt(ctx, res); err != nil {
		s.logger.Error("DispatchConfirmation: payment_id=%s: %v", res.PaymentID, err)
		if relErr := s.reservationRepo.ReleaseReceipt(ctx, res.PaymentID); relErr != nil {
			s.logger.Error("DispatchConfirmation: failed to release receipt flag for payment_id=%s: %v",
				res.PaymentID, relErr)
		}
		return
	}
	res.Communication.ReceiptSent = true
}

// DispatchReschedule notifies the customer that the reservation moved to a
// new slot
func (s *Service) DispatchReschedule(ctx context.Context, res *domain.Reservation, previous domain.Slot) {
	variables := s.cfg.templateVariables(res)
	variables["previousDate"] = previous.Date
	variables["previousTime"] = fmt.Sprintf("%02d:00", previous.Hour)

	err := s.mailer.Send(ctx, &mailersend.Email{
		ToEmail:    res.Customer.Email,
		ToName:     res.Customer.FirstName + " " + res.Customer.LastName,
		Subject:    subject(templateChanged, res.Locale),
		TemplateID: s.cfg.changedTemplate(res.Locale),
		Variables:  variables,
	})
	if err != nil {
		s.metrics.IncEmailFailures()
		s.logger.Error("DispatchReschedule: payment_id=%s: %v", res.PaymentID, err)
		return
	}
	s.metrics.IncEmailsSent(templateChanged)
}

// DispatchCancelation notifies the customer that the reservation was
// canceled. The flag claim keeps a repeated cancel callback from mailing
// twice, even when two dispatches run concurrently.
func (s *Service) DispatchCancelation(ctx context.Context, res *domain.Reservation) {
	if res.Communication.CancelationEmailSent {
		return
	}

	claimed, err := s.reservationRepo.ClaimCancelationEmail(ctx, res.PaymentID)
	if err != nil {
		s.logger.Error("DispatchCancelation: failed to claim email flag for payment_id=%s: %v",
			res.PaymentID, err)
		return
	}
	if !claimed {
		res.Communication.CancelationEmailSent = true
		return
	}

	err = s.mailer.Send(ctx, &mailersend.Email{
		ToEmail:    res.Customer.Email,
		ToName:     res.Customer.FirstName + " " + res.Customer.LastName,
		Subject:    subject(templateCanceled, res.Locale),
		TemplateID: s.cfg.canceledTemplate(res.Locale),
		Variables:  s.cfg.templateVariables(res),
	})
	if err != nil {
		s.metrics.IncEmailFailures()
		s.logger.Error("DispatchCancelation: payment_id=%s: %v", res.PaymentID, err)
		if relErr := s.reservationRepo.ReleaseCancelationEmail(ctx, res.PaymentID); relErr != nil {
			s.logger.Error("DispatchCancelation: failed to release email flag for payment_id=%s: %v",
				res.PaymentID, relErr)
		}
		return
	}
	s.metrics.IncEmailsSent(templateCanceled)
	res.Communication.CancelationEmailSent = true
}

// RetryMissing re-runs confirmation delivery for succeeded reservations with
// an unsent email or receipt. Returns how many reservations were retried.
func (s *Service) RetryMissing(ctx context.Context, limit uint64) (int, error) {
	pending, err := s.reservationRepo.ListMissingCommunications(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("%w: RetryMissing - repository error: %v", ErrInternal, err)
	}

	for _, res := range pending {
		s.logger.Info("RetryMissing: retrying communications for payment_id=%s", res.PaymentID)
		s.DispatchConfirmation(ctx, res)
	}
	return len(pending), nil
}

func (s *Service) sendConfirmationEmails(ctx context.Context, res *domain.Reservation) error {
	variables := s.cfg.templateVariables(res)

	err := s.mailer.Send(ctx, &mailersend.Email{
		ToEmail:    res.Customer.Email,
		ToName:     res.Customer.FirstName + " " + res.Customer.LastName,
		Subject:    subject(templateConfirmed, res.Locale),
		TemplateID: s.cfg.confirmedTemplate(res.Locale),
		Variables:  variables,
	})
	if err != nil {
		s.metrics.IncEmailFailures()
		return fmt.Errorf("%w: customer confirmation: %v", ErrEmailFailed, err)
	}
	s.metrics.IncEmailsSent(templateConfirmed)

	// The operator copy is informational; a failure here does not block the
	// customer-facing flag.
	if s.cfg.OperatorEmail != "" {
		if err := s.mailer.Send(ctx, &mailersend.Email{
			ToEmail:    s.cfg.OperatorEmail,
			Subject:    subject(templateOperator, "hu-HU"),
			TemplateID: s.cfg.OperatorTemplate,
			Variables:  variables,
		}); err != nil {
			s.metrics.IncEmailFailures()
			s.logger.Warn("sendConfirmationEmails: operator copy failed for payment_id=%s: %v",
				res.PaymentID, err)
		} else {
			s.metrics.IncEmailsSent(templateOperator)
		}
	}
	return nil
}

func (s *Service) issueReceipt(ctx context.Context, res *domain.Reservation) error {
	partnerID, err := s.invoicer.FindOrCreatePartner(ctx, res.Customer)
	if err != nil {
		s.metrics.IncReceiptFailures()
		return fmt.Errorf("%w: partner lookup: %v", ErrReceiptFailed, err)
	}

	documentID, err := s.invoicer.CreateDocument(ctx, res, partnerID)
	if err != nil {
		s.metrics.IncReceiptFailures()
		return fmt.Errorf("%w: document creation: %v", ErrReceiptFailed, err)
	}

	if err := s.invoicer.SendDocument(ctx, documentID, res.Customer.Email); err != nil {
		s.metrics.IncReceiptFailures()
		return fmt.Errorf("%w: document delivery: %v", ErrReceiptFailed, err)
	}

	if err := s.reservationRepo.SetReceiptDocument(ctx, res.PaymentID, documentID); err != nil {
		// The receipt went out; only the document id bookkeeping failed.
		s.logger.Error("issueReceipt: failed to record document id for payment_id=%s: %v",
			res.PaymentID, err)
	}
	res.ReservationID = &documentID

	s.metrics.IncReceiptsIssued()
	s.logger.Info("issueReceipt: document_id=%d issued for payment_id=%s", documentID, res.PaymentID)
	return nil
}
