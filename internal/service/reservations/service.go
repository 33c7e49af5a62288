package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
	reservationRepo "github.com/kamillakovacs/craftbeerspa/internal/infra/storage/reservation"
	"github.com/kamillakovacs/craftbeerspa/internal/service/reservations/models"
)

// Service answers reservation lookups for the customer-facing pages and the
// operator views
type Service struct {
	reservationRepo ReservationRepository
	policy          domain.BookingPolicy
	logger          Logger
}

// NewService creates a reservation lookup service
func NewService(reservationRepo ReservationRepository, policy domain.BookingPolicy, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		policy:          policy,
		logger:          logger,
	}
}

// GetByPaymentID fetches one reservation. The payment id doubles as the
// customer's reservation reference, so no further access check applies.
func (s *Service) GetByPaymentID(ctx context.Context, paymentID string) (*models.ReservationResponse, error) {
	if paymentID == "" {
		return nil, fmt.Errorf("%w: paymentId is required", ErrInvalidInput)
	}

	res, err := s.reservationRepo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByPaymentID: payment_id=%s not found", paymentID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByPaymentID: repository error for payment_id=%s: %v", paymentID, err)
		return nil, fmt.Errorf("%w: GetByPaymentID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(res), nil
}

// ListUpcoming returns reservations from today onward for the operator view
func (s *Service) ListUpcoming(ctx context.Context, now time.Time) (*models.ReservationListResponse, error) {
	todayKey := domain.DateKey(now, s.policy.Location)

	list, err := s.reservationRepo.ListAfter(ctx, todayKey)
	if err != nil {
		s.logger.Error("ListUpcoming: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListUpcoming - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListUpcoming: fetched %d reservations from %s", len(list), todayKey)
	return models.FromDomainReservationList(list), nil
}

// ListOnDate returns reservations on one date for the operator view
func (s *Service) ListOnDate(ctx context.Context, dateKey string) (*models.ReservationListResponse, error) {
	if _, err := time.Parse(domain.DateFormat, dateKey); err != nil {
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	list, err := s.reservationRepo.ListOnDate(ctx, dateKey)
	if err != nil {
		s.logger.Error("ListOnDate: repository error for date=%s: %v", dateKey, err)
		return nil, fmt.Errorf("%w: ListOnDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(list), nil
}
