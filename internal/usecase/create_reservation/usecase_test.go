package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
	"github.com/kamillakovacs/craftbeerspa/internal/integrations/barion"
)

var budapest = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Budapest")
	if err != nil {
		panic(err)
	}
	return loc
}()

type fakeTime struct{ now time.Time }

func (f *fakeTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeReservationRepo struct {
	byPaymentID map[string]*domain.Reservation
	createErr   error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{byPaymentID: make(map[string]*domain.Reservation)}
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byPaymentID[res.PaymentID]; exists {
		return nil
	}
	stored := *res
	f.byPaymentID[res.PaymentID] = &stored
	return nil
}

func (f *fakeReservationRepo) ListOnDate(_ context.Context, dateKey string) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for _, res := range f.byPaymentID {
		if res.Slot.Date == dateKey {
			out = append(out, res)
		}
	}
	return out, nil
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

type fakeGateway struct {
	initiated int
	err       error
}

func (f *fakeGateway) Initiate(_ context.Context, _ *domain.Reservation) (*barion.PaymentInitiation, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.initiated++
	return &barion.PaymentInitiation{
		PaymentID:  fmt.Sprintf("pay-%d", f.initiated),
		GatewayURL: "https://gateway.example/pay",
	}, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func validRequest() *Request {
	return &Request{
		Date:           "2026-06-15",
		Hour:           14,
		NumberOfGuests: 2,
		NumberOfTubs:   1,
		Price:          28000,
		FirstName:      "Anna",
		LastName:       "Kovacs",
		PhoneNumber:    "+36301234567",
		Email:          "anna@example.com",
		Address:        "Fo utca 1",
		City:           "Budapest",
		CountryCode:    "HU",
		PostCode:       "1011",
	}
}

func newTestUseCase(repo *fakeReservationRepo, blackout *fakeBlackoutRepo, gateway *fakeGateway) *UseCase {
	policy, err := domain.NewBookingPolicy("Europe/Budapest", 60, 30)
	if err != nil {
		panic(err)
	}
	uc := NewUseCase(repo, blackout, gateway, fakeTxManager{}, policy, nopLogger{})
	uc.timeProvider = &fakeTime{now: time.Date(2026, 6, 10, 9, 0, 0, 0, budapest)}
	return uc
}

func TestExecute_PreparesReservation(t *testing.T) {
	repo := newFakeReservationRepo()
	gateway := &fakeGateway{}
	uc := newTestUseCase(repo, &fakeBlackoutRepo{}, gateway)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "pay-1", resp.PaymentID)
	assert.NotEmpty(t, resp.TransactionID)
	assert.Equal(t, "https://gateway.example/pay", resp.RedirectURL)
	assert.Equal(t, string(domain.StatusPrepared), resp.Status)

	stored := repo.byPaymentID["pay-1"]
	require.NotNil(t, stored)
	assert.Equal(t, domain.Slot{Date: "2026-06-15", Hour: 14}, stored.Slot)
	assert.Equal(t, domain.StatusPrepared, stored.PaymentStatus)
	assert.Equal(t, "hu-HU", stored.Locale, "locale defaults to Hungarian")
}

func TestExecute_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"missing date", func(r *Request) { r.Date = "" }, ErrInvalidInput},
		{"bad date format", func(r *Request) { r.Date = "15-06-2026" }, ErrInvalidInput},
		{"non-canonical hour", func(r *Request) { r.Hour = 13 }, ErrInvalidInput},
		{"unsellable combination", func(r *Request) { r.NumberOfGuests = 9 }, ErrInvalidInput},
		{"price mismatch", func(r *Request) { r.Price = 1 }, ErrInvalidInput},
		{"missing email", func(r *Request) { r.Email = "" }, ErrInvalidInput},
		{"today", func(r *Request) { r.Date = "2026-06-10" }, ErrInvalidDate},
		{"past date", func(r *Request) { r.Date = "2026-06-01" }, ErrInvalidDate},
		{"beyond horizon", func(r *Request) { r.Date = "2026-09-15" }, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeReservationRepo()
			gateway := &fakeGateway{}
			uc := newTestUseCase(repo, &fakeBlackoutRepo{}, gateway)

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.byPaymentID, "nothing may be persisted")
			assert.Zero(t, gateway.initiated, "gateway must not be called")
		})
	}
}

func TestExecute_SlotConflict(t *testing.T) {
	repo := newFakeReservationRepo()
	repo.byPaymentID["existing"] = &domain.Reservation{
		PaymentID:     "existing",
		Slot:          domain.Slot{Date: "2026-06-15", Hour: 14},
		PaymentStatus: domain.StatusSucceeded,
	}
	gateway := &fakeGateway{}
	uc := newTestUseCase(repo, &fakeBlackoutRepo{}, gateway)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Zero(t, gateway.initiated, "advisory check rejects before the gateway is involved")
}

func TestExecute_BlackoutSlotConflict(t *testing.T) {
	calendar := domain.NewBlackoutCalendar()
	calendar.Slots[domain.Slot{Date: "2026-06-15", Hour: 14}] = struct{}{}

	uc := newTestUseCase(newFakeReservationRepo(), &fakeBlackoutRepo{calendar: calendar}, &fakeGateway{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_GatewayFailure(t *testing.T) {
	repo := newFakeReservationRepo()
	gateway := &fakeGateway{err: errors.New("gateway down")}
	uc := newTestUseCase(repo, &fakeBlackoutRepo{}, gateway)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrGateway)
	assert.Empty(t, repo.byPaymentID)
}

func TestExecute_ConcurrentPrepare_ExactlyOneWins(t *testing.T) {
	// Two drafts for the same slot: the first commits, the second must hit the
	// transactional re-check and abort without writing.
	repo := newFakeReservationRepo()
	gateway := &fakeGateway{}
	uc := newTestUseCase(repo, &fakeBlackoutRepo{}, gateway)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)

	require.Len(t, repo.byPaymentID, 1)
}

func TestExecute_ExpiredPreparedHoldIsReusable(t *testing.T) {
	repo := newFakeReservationRepo()
	repo.byPaymentID["stale"] = &domain.Reservation{
		PaymentID:      "stale",
		Slot:           domain.Slot{Date: "2026-06-15", Hour: 14},
		PaymentStatus:  domain.StatusPrepared,
		DateOfPurchase: time.Date(2026, 6, 10, 7, 0, 0, 0, budapest),
	}
	uc := newTestUseCase(repo, &fakeBlackoutRepo{}, &fakeGateway{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "pay-1", resp.PaymentID)
}
