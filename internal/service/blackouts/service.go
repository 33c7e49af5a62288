package blackouts

import (
	"context"
	"fmt"
	"time"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
	"github.com/kamillakovacs/craftbeerspa/internal/service/blackouts/models"
)

// Service manages the operator blackout calendar. Blocking a date or slot
// hides it from new bookings; existing reservations are untouched.
type Service struct {
	blackoutRepo BlackoutRepository
	logger       Logger
}

// NewService creates a blackout calendar service
func NewService(blackoutRepo BlackoutRepository, logger Logger) *Service {
	return &Service{
		blackoutRepo: blackoutRepo,
		logger:       logger,
	}
}

// GetCalendar returns the current blackout calendar
func (s *Service) GetCalendar(ctx context.Context) (*models.CalendarResponse, error) {
	calendar, err := s.blackoutRepo.GetCalendar(ctx)
	if err != nil {
		s.logger.Error("GetCalendar: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetCalendar - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainCalendar(calendar), nil
}

// BlockDate blocks a whole date for new bookings
func (s *Service) BlockDate(ctx context.Context, dateKey string) error {
	if err := validDateKey(dateKey); err != nil {
		return err
	}

	if err := s.blackoutRepo.BlockDate(ctx, dateKey); err != nil {
		s.logger.Error("BlockDate: repository error for date=%s: %v", dateKey, err)
		return fmt.Errorf("%w: BlockDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("BlockDate: date=%s blocked", dateKey)
	return nil
}

// UnblockDate removes a whole-date block
func (s *Service) UnblockDate(ctx context.Context, dateKey string) error {
	if err := validDateKey(dateKey); err != nil {
		return err
	}

	if err := s.blackoutRepo.UnblockDate(ctx, dateKey); err != nil {
		s.logger.Error("UnblockDate: repository error for date=%s: %v", dateKey, err)
		return fmt.Errorf("%w: UnblockDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UnblockDate: date=%s unblocked", dateKey)
	return nil
}

// BlockSlot blocks one date+hour slot for new bookings
func (s *Service) BlockSlot(ctx context.Context, dateKey string, hour int) error {
	slot, err := validSlot(dateKey, hour)
	if err != nil {
		return err
	}

	if err := s.blackoutRepo.BlockSlot(ctx, slot); err != nil {
		s.logger.Error("BlockSlot: repository error for slot=%s: %v", slot, err)
		return fmt.Errorf("%w: BlockSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("BlockSlot: slot=%s blocked", slot)
	return nil
}

// UnblockSlot removes a slot block
func (s *Service) UnblockSlot(ctx context.Context, dateKey string, hour int) error {
	slot, err := validSlot(dateKey, hour)
	if err != nil {
		return err
	}

	if err := s.blackoutRepo.UnblockSlot(ctx, slot); err != nil {
		s.logger.Error("UnblockSlot: repository error for slot=%s: %v", slot, err)
		return fmt.Errorf("%w: UnblockSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UnblockSlot: slot=%s unblocked", slot)
	return nil
}

func validDateKey(dateKey string) error {
	if _, err := time.Parse(domain.DateFormat, dateKey); err != nil {
		return fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}
	return nil
}

func validSlot(dateKey string, hour int) (domain.Slot, error) {
	if err := validDateKey(dateKey); err != nil {
		return domain.Slot{}, err
	}
	slot := domain.Slot{Date: dateKey, Hour: hour}
	if !slot.IsCanonical() {
		return domain.Slot{}, fmt.Errorf("%w: hour %d is not a bookable time", ErrInvalidInput, hour)
	}
	return slot, nil
}
