package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
)

const retryBatchSize = 50

// Notifier retries undelivered reservation communications
type Notifier interface {
	RetryMissing(ctx context.Context, limit uint64) (int, error)
}

// ReservationRepository reports abandoned prepared reservations
type ReservationRepository interface {
	CountExpiredPrepared(ctx context.Context, cutoff time.Time) (int64, error)
}

// Logger is the logging interface the sweeper depends on
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper periodically retries missing communications and reports prepared
// reservations whose payment window has closed. Expired holds need no
// cleanup write: the availability engine already ignores them.
type Sweeper struct {
	notifier        Notifier
	reservationRepo ReservationRepository
	policy          domain.BookingPolicy
	schedule        string
	cron            *cron.Cron
	logger          Logger
}

// NewSweeper creates the background sweeper
func NewSweeper(
	notifier Notifier,
	reservationRepo ReservationRepository,
	policy domain.BookingPolicy,
	schedule string,
	logger Logger,
) *Sweeper {
	return &Sweeper{
		notifier:        notifier,
		reservationRepo: reservationRepo,
		policy:          policy,
		schedule:        schedule,
		cron:            cron.New(),
		logger:          logger,
	}
}

// Start registers the sweep on its schedule and starts the cron runner
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Sweeper started with schedule %q", s.schedule)
	return nil
}

// Stop stops the cron runner and waits for a running sweep to finish
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Sweeper stopped")
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	retried, err := s.notifier.RetryMissing(ctx, retryBatchSize)
	if err != nil {
		s.logger.Error("Sweep: communication retry failed: %v", err)
	} else if retried > 0 {
		s.logger.Info("Sweep: retried communications for %d reservations", retried)
	}

	cutoff := time.Now().Add(-s.policy.PreparedTTL)
	expired, err := s.reservationRepo.CountExpiredPrepared(ctx, cutoff)
	if err != nil {
		s.logger.Error("Sweep: expired hold count failed: %v", err)
		return
	}
	if expired > 0 {
		s.logger.Info("Sweep: %d prepared reservations past their payment window", expired)
	}
}
