package confirm_payment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
	"github.com/kamillakovacs/craftbeerspa/internal/infra/storage/reservation"
	"github.com/kamillakovacs/craftbeerspa/internal/integrations/barion"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	mu            sync.Mutex
	byPaymentID   map[string]*domain.Reservation
	statusUpdates int
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

func (f *fakeRepo) UpdatePaymentStatus(_ context.Context, paymentID string, status domain.PaymentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.byPaymentID[paymentID]
	if !ok {
		return reservation.ErrReservationNotFound
	}
	res.PaymentStatus = status
	f.statusUpdates++
	return nil
}

type fakeGateway struct {
	state *barion.PaymentState
	err   error
}

func (f *fakeGateway) GetPaymentState(context.Context, string) (*barion.PaymentState, error) {
	return f.state, f.err
}

type fakeNotifier struct {
	dispatched chan *domain.Reservation
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{dispatched: make(chan *domain.Reservation, 1)}
}

func (f *fakeNotifier) DispatchConfirmation(_ context.Context, res *domain.Reservation) {
	f.dispatched <- res
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func preparedReservation() *domain.Reservation {
	return &domain.Reservation{
		PaymentID:     "pay-1",
		TransactionID: "tx-1",
		Slot:          domain.Slot{Date: "2026-06-15", Hour: 14},
		PaymentStatus: domain.StatusPrepared,
	}
}

func succeededState() *fakeGateway {
	return &fakeGateway{state: &barion.PaymentState{PaymentID: "pay-1", Status: barion.StateSucceeded}}
}

func TestExecute_ConfirmsPreparedReservation(t *testing.T) {
	repo := newFakeRepo(preparedReservation())
	notifier := newFakeNotifier()
	uc := NewUseCase(repo, succeededState(), notifier, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{PaymentID: "pay-1"})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusSucceeded), resp.Status)
	assert.Equal(t, domain.StatusSucceeded, repo.byPaymentID["pay-1"].PaymentStatus)

	select {
	case dispatched := <-notifier.dispatched:
		assert.Equal(t, "pay-1", dispatched.PaymentID)
		assert.Equal(t, domain.StatusSucceeded, dispatched.PaymentStatus)
	case <-time.After(time.Second):
		t.Fatal("confirmation side effects were not dispatched")
	}
}

func TestExecute_RepeatedCallbackIsIdempotent(t *testing.T) {
	repo := newFakeRepo(preparedReservation())
	notifier := newFakeNotifier()
	uc := NewUseCase(repo, succeededState(), notifier, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{PaymentID: "pay-1"})
	require.NoError(t, err)
	<-notifier.dispatched

	resp, err := uc.Execute(context.Background(), &Request{PaymentID: "pay-1"})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusSucceeded), resp.Status)
	assert.Equal(t, 1, repo.statusUpdates, "already succeeded must not be rewritten")
	// the notifier is re-invoked and relies on the communication flags to
	// avoid duplicate sends
	<-notifier.dispatched
}

func TestExecute_CanceledReservationRejected(t *testing.T) {
	res := preparedReservation()
	res.Canceled = domain.CanceledByUser
	uc := NewUseCase(newFakeRepo(res), succeededState(), newFakeNotifier(), fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{PaymentID: "pay-1"})
	assert.ErrorIs(t, err, ErrReservationCanceled)
}

func TestExecute_UnknownPaymentID(t *testing.T) {
	uc := NewUseCase(newFakeRepo(), succeededState(), newFakeNotifier(), fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{PaymentID: "nope"})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_GatewayDown_ReservationStaysPrepared(t *testing.T) {
	repo := newFakeRepo(preparedReservation())
	gateway := &fakeGateway{err: errors.New("timeout")}
	uc := NewUseCase(repo, gateway, newFakeNotifier(), fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{PaymentID: "pay-1"})
	assert.ErrorIs(t, err, ErrGateway)
	assert.Equal(t, domain.StatusPrepared, repo.byPaymentID["pay-1"].PaymentStatus)
}

func TestExecute_PaymentNotCompleted(t *testing.T) {
	repo := newFakeRepo(preparedReservation())
	gateway := &fakeGateway{state: &barion.PaymentState{PaymentID: "pay-1", Status: barion.StateCanceled}}
	uc := NewUseCase(repo, gateway, newFakeNotifier(), fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{PaymentID: "pay-1"})
	assert.ErrorIs(t, err, ErrPaymentNotCompleted)
	assert.Equal(t, domain.StatusPrepared, repo.byPaymentID["pay-1"].PaymentStatus)
}

func TestExecute_MissingPaymentID(t *testing.T) {
	uc := NewUseCase(newFakeRepo(), succeededState(), newFakeNotifier(), fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
