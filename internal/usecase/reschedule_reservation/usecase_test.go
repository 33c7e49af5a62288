package reschedule_reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
	"github.com/kamillakovacs/craftbeerspa/internal/infra/storage/reservation"
)

var budapest = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Budapest")
	if err != nil {
		panic(err)
	}
	return loc
}()

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	mu          sync.Mutex
	byPaymentID map[string]*domain.Reservation
}

func newFakeRepo(reservations ...*domain.Reservation) *fakeRepo {
	f := &fakeRepo{byPaymentID: make(map[string]*domain.Reservation)}
	for _, res := range reservations {
		f.byPaymentID[res.PaymentID] = res
	}
	return f
}

func (f *fakeRepo) GetByPaymentID(_ context.Context, paymentID string) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.byPaymentID[paymentID]
	if !ok {
		return nil, reservation.ErrReservationNotFound
	}
	copied := *res
	return &copied, nil
}

func (f *fakeRepo) ListOnDate(_ context.Context, dateKey string) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Reservation, 0)
	for _, res := range f.byPaymentID {
		if res.Slot.Date == dateKey {
			copied := *res
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateSlot(_ context.Context, paymentID string, slot domain.Slot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.byPaymentID[paymentID]
	if !ok {
		return reservation.ErrReservationNotFound
	}
	res.Slot = slot
	res.Communication.RescheduleEmailSentCount++
	return nil
}

type fakeBlackoutRepo struct {
	calendar *domain.BlackoutCalendar
}

func (f *fakeBlackoutRepo) GetCalendar(context.Context) (*domain.BlackoutCalendar, error) {
	if f.calendar == nil {
		return domain.NewBlackoutCalendar(), nil
	}
	return f.calendar, nil
}

type dispatch struct {
	res      *domain.Reservation
	previous domain.Slot
}

type fakeNotifier struct {
	dispatched chan dispatch
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{dispatched: make(chan dispatch, 1)}
}

func (f *fakeNotifier) DispatchReschedule(_ context.Context, res *domain.Reservation, previous domain.Slot) {
	f.dispatched <- dispatch{res: res, previous: previous}
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func succeededReservation() *domain.Reservation {
	return &domain.Reservation{
		PaymentID:     "pay-1",
		Slot:          domain.Slot{Date: "2026-06-15", Hour: 14},
		PaymentStatus: domain.StatusSucceeded,
	}
}

func newTestUseCase(repo *fakeRepo, blackout *fakeBlackoutRepo, notifier *fakeNotifier) *UseCase {
	policy, err := domain.NewBookingPolicy("Europe/Budapest", 60, 30)
	if err != nil {
		panic(err)
	}
	uc := NewUseCase(repo, blackout, notifier, fakeTxManager{}, policy, nopLogger{})
	uc.timeProvider = &fakeTime{now: time.Date(2026, 6, 10, 9, 0, 0, 0, budapest)}
	return uc
}

type fakeTime struct{ now time.Time }

func (f *fakeTime) Now() time.Time { return f.now }

func TestExecute_MovesReservation(t *testing.T) {
	repo := newFakeRepo(succeededReservation())
	notifier := newFakeNotifier()
	uc := newTestUseCase(repo, &fakeBlackoutRepo{}, notifier)

	resp, err := uc.Execute(context.Background(), &Request{PaymentID: "pay-1", Date: "2026-06-20", Hour: 18})
	require.NoError(t, err)

	assert.Equal(t, "2026-06-20", resp.Date)
	assert.Equal(t, 18, resp.Hour)
	assert.Equal(t, "2026-06-15", resp.PreviousDate)
	assert.Equal(t, 14, resp.PreviousHour)

	stored := repo.byPaymentID["pay-1"]
	assert.Equal(t, domain.Slot{Date: "2026-06-20", Hour: 18}, stored.Slot)
	assert.Equal(t, 1, stored.Communication.RescheduleEmailSentCount)

	select {
	case got := <-notifier.dispatched:
		assert.Equal(t, domain.Slot{Date: "2026-06-15", Hour: 14}, got.previous)
	case <-time.After(time.Second):
		t.Fatal("reschedule email was not dispatched")
	}
}

func TestExecute_TargetTaken_NoMutation(t *testing.T) {
	other := &domain.Reservation{
		PaymentID:     "pay-2",
		Slot:          domain.Slot{Date: "2026-06-20", Hour: 18},
		PaymentStatus: domain.StatusSucceeded,
	}
	repo := newFakeRepo(succeededReservation(), other)
	uc := newTestUseCase(repo, &fakeBlackoutRepo{}, newFakeNotifier())

	_, err := uc.Execute(context.Background(), &Request{PaymentID: "pay-1", Date: "2026-06-20", Hour: 18})
	assert.ErrorIs(t, err, ErrSlotConflict)

	stored := repo.byPaymentID["pay-1"]
	assert.Equal(t, domain.Slot{Date: "2026-06-15", Hour: 14}, stored.Slot, "failed reschedule keeps the current slot")
	assert.Zero(t, stored.Communication.RescheduleEmailSentCount)
}

func TestExecute_SameDateMove_DoesNotCollideWithItself(t *testing.T) {
	repo := newFakeRepo(succeededReservation())
	uc := newTestUseCase(repo, &fakeBlackoutRepo{}, newFakeNotifier())

	// move within the same date: the reservation's own row must be excluded
	// from the occupancy check
	resp, err := uc.Execute(context.Background(), &Request{PaymentID: "pay-1", Date: "2026-06-15", Hour: 16})
	require.NoError(t, err)
	assert.Equal(t, 16, resp.Hour)
}

func TestExecute_SameSlotRejected(t *testing.T) {
	uc := newTestUseCase(newFakeRepo(succeededReservation()), &fakeBlackoutRepo{}, newFakeNotifier())

	_, err := uc.Execute(context.Background(), &Request{PaymentID: "pay-1", Date: "2026-06-15", Hour: 14})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_BlackoutTargetRejected(t *testing.T) {
	calendar := domain.NewBlackoutCalendar()
	calendar.Dates["2026-06-20"] = struct{}{}
	uc := newTestUseCase(newFakeRepo(succeededReservation()), &fakeBlackoutRepo{calendar: calendar}, newFakeNotifier())

	_, err := uc.Execute(context.Background(), &Request{PaymentID: "pay-1", Date: "2026-06-20", Hour: 18})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_LifecycleGuards(t *testing.T) {
	canceled := succeededReservation()
	canceled.Canceled = domain.CanceledByUser

	prepared := succeededReservation()
	prepared.PaymentStatus = domain.StatusPrepared

	for _, tt := range []struct {
		name string
		res  *domain.Reservation
	}{
		{"canceled", canceled},
		{"prepared", prepared},
	} {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(newFakeRepo(tt.res), &fakeBlackoutRepo{}, newFakeNotifier())

			_, err := uc.Execute(context.Background(), &Request{PaymentID: "pay-1", Date: "2026-06-20", Hour: 18})
			assert.ErrorIs(t, err, ErrNotReschedulable)
		})
	}
}

func TestExecute_DateRules(t *testing.T) {
	for _, tt := range []struct {
		name string
		date string
		hour int
		want error
	}{
		{"today", "2026-06-10", 18, ErrInvalidDate},
		{"past", "2026-06-01", 18, ErrInvalidDate},
		{"beyond horizon", "2026-09-20", 18, ErrInvalidDate},
		{"non-canonical hour", "2026-06-20", 13, ErrInvalidInput},
		{"bad format", "20-06-2026", 18, ErrInvalidInput},
	} {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(newFakeRepo(succeededReservation()), &fakeBlackoutRepo{}, newFakeNotifier())

			_, err := uc.Execute(context.Background(), &Request{PaymentID: "pay-1", Date: tt.date, Hour: tt.hour})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExecute_UnknownPaymentID(t *testing.T) {
	uc := newTestUseCase(newFakeRepo(), &fakeBlackoutRepo{}, newFakeNotifier())

	_, err := uc.Execute(context.Background(), &Request{PaymentID: "nope", Date: "2026-06-20", Hour: 18})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
