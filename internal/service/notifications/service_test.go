package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
	"github.com/kamillakovacs/craftbeerspa/internal/integrations/mailersend"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type nopMetrics struct{}

func (nopMetrics) IncEmailsSent(string) {}
func (nopMetrics) IncEmailFailures()    {}
func (nopMetrics) IncReceiptsIssued()   {}
func (nopMetrics) IncReceiptFailures()  {}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []*mailersend.Email
	sendErr error
	delay   time.Duration
}

func (f *fakeMailer) Send(_ context.Context, email *mailersend.Email) error {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, email)
	return nil
}

func (f *fakeMailer) sentByTemplate(templateID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, email := range f.sent {
		if email.TemplateID == templateID {
			count++
		}
	}
	return count
}

type fakeInvoicer struct {
	mu        sync.Mutex
	documents int64
	failAt    string
	delay     time.Duration
}

func (f *fakeInvoicer) FindOrCreatePartner(context.Context, domain.Customer) (int64, error) {
	if f.failAt == "partner" {
		return 0, errors.New("partner rejected")
	}
	return 42, nil
}

func (f *fakeInvoicer) CreateDocument(context.Context, *domain.Reservation, int64) (int64, error) {
	if f.failAt == "document" {
		return 0, errors.New("document rejected")
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.documents++
	return 100 + f.documents, nil
}

func (f *fakeInvoicer) SendDocument(context.Context, int64, string) error {
	if f.failAt == "send" {
		return errors.New("send rejected")
	}
	return nil
}

func (f *fakeInvoicer) documentCount() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.documents
}

// fakeFlagRepo mimics the compare-and-set flag claims of the real repository
type fakeFlagRepo struct {
	mu          sync.Mutex
	emailSent   map[string]bool
	receiptSent map[string]bool
	cancelSent  map[string]bool
	documents   map[string]int64
	pending     []*domain.Reservation
}

func newFakeFlagRepo() *fakeFlagRepo {
	return &fakeFlagRepo{
		emailSent:   make(map[string]bool),
		receiptSent: make(map[string]bool),
		cancelSent:  make(map[string]bool),
		documents:   make(map[string]int64),
	}
}

func (f *fakeFlagRepo) claim(flags map[string]bool, paymentID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if flags[paymentID] {
		return false, nil
	}
	flags[paymentID] = true
	return true, nil
}

func (f *fakeFlagRepo) release(flags map[string]bool, paymentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	flags[paymentID] = false
	return nil
}

func (f *fakeFlagRepo) ClaimReservationEmail(_ context.Context, paymentID string) (bool, error) {
	return f.claim(f.emailSent, paymentID)
}

func (f *fakeFlagRepo) ReleaseReservationEmail(_ context.Context, paymentID string) error {
	return f.release(f.emailSent, paymentID)
}

func (f *fakeFlagRepo) ClaimReceipt(_ context.Context, paymentID string) (bool, error) {
	return f.claim(f.receiptSent, paymentID)
}

func (f *fakeFlagRepo) ReleaseReceipt(_ context.Context, paymentID string) error {
	return f.release(f.receiptSent, paymentID)
}

func (f *fakeFlagRepo) SetReceiptDocument(_ context.Context, paymentID string, documentID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.documents[paymentID] = documentID
	return nil
}

func (f *fakeFlagRepo) ClaimCancelationEmail(_ context.Context, paymentID string) (bool, error) {
	return f.claim(f.cancelSent, paymentID)
}

func (f *fakeFlagRepo) ReleaseCancelationEmail(_ context.Context, paymentID string) error {
	return f.release(f.cancelSent, paymentID)
}

func (f *fakeFlagRepo) ListMissingCommunications(context.Context, uint64) ([]*domain.Reservation, error) {
	return f.pending, nil
}

func testConfig() Config {
	return Config{
		OperatorEmail:       "operator@example.com",
		ConfirmedTemplateHU: "tpl-confirmed-hu",
		ConfirmedTemplateEN: "tpl-confirmed-en",
		ChangedTemplateHU:   "tpl-changed-hu",
		ChangedTemplateEN:   "tpl-changed-en",
		CanceledTemplateHU:  "tpl-canceled-hu",
		CanceledTemplateEN:  "tpl-canceled-en",
		OperatorTemplate:    "tpl-operator",
		ReservationBaseURL:  "https://example.com/reservation/",
	}
}

func confirmedReservation() *domain.Reservation {
	return &domain.Reservation{
		PaymentID:      "pay-1",
		Slot:           domain.Slot{Date: "2026-06-15", Hour: 14},
		NumberOfGuests: 2,
		NumberOfTubs:   1,
		Price:          28000,
		Customer: domain.Customer{
			FirstName: "Anna",
			LastName:  "Kovacs",
			Email:     "anna@example.com",
		},
		Locale:        "hu-HU",
		PaymentStatus: domain.StatusSucceeded,
	}
}

func TestDispatchConfirmation_SendsEmailsAndReceipt(t *testing.T) {
	mailer := &fakeMailer{}
	repo := newFakeFlagRepo()
	svc := NewService(mailer, &fakeInvoicer{}, repo, nopMetrics{}, testConfig(), nopLogger{})

	res := confirmedReservation()
	svc.DispatchConfirmation(context.Background(), res)

	// customer confirmation plus the operator copy
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "anna@example.com", mailer.sent[0].ToEmail)
	assert.Equal(t, "tpl-confirmed-hu", mailer.sent[0].TemplateID)
	assert.Equal(t, "https://example.com/reservation/pay-1", mailer.sent[0].Variables["reservationUrl"])
	assert.Equal(t, "operator@example.com", mailer.sent[1].ToEmail)

	assert.True(t, repo.emailSent["pay-1"])
	assert.True(t, repo.receiptSent["pay-1"])
	assert.EqualValues(t, 101, repo.documents["pay-1"])
	assert.True(t, res.Communication.ReservationEmailSent)
	assert.True(t, res.Communication.ReceiptSent)
}

func TestDispatchConfirmation_LocaleSelectsTemplate(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewService(mailer, &fakeInvoicer{}, newFakeFlagRepo(), nopMetrics{}, testConfig(), nopLogger{})

	res := confirmedReservation()
	res.Locale = "en-US"
	svc.DispatchConfirmation(context.Background(), res)

	require.NotEmpty(t, mailer.sent)
	assert.Equal(t, "tpl-confirmed-en", mailer.sent[0].TemplateID)
}

func TestDispatchConfirmation_FlagsPreventDuplicates(t *testing.T) {
	mailer := &fakeMailer{}
	repo := newFakeFlagRepo()
	svc := NewService(mailer, &fakeInvoicer{}, repo, nopMetrics{}, testConfig(), nopLogger{})

	res := confirmedReservation()
	res.Communication.ReservationEmailSent = true
	res.Communication.ReceiptSent = true

	svc.DispatchConfirmation(context.Background(), res)

	assert.Empty(t, mailer.sent)
	assert.Empty(t, repo.documents)
}

func TestDispatchConfirmation_ConcurrentCallbacksSendOnce(t *testing.T) {
	// The customer redirect and the gateway's server-to-server callback can
	// confirm the same payment at the same time; each dispatch works on its
	// own copy of the reservation, so only the flag claim can prevent a
	// duplicate email or invoice.
	mailer := &fakeMailer{delay: 20 * time.Millisecond}
	invoicer := &fakeInvoicer{delay: 20 * time.Millisecond}
	repo := newFakeFlagRepo()
	svc := NewService(mailer, invoicer, repo, nopMetrics{}, testConfig(), nopLogger{})

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.DispatchConfirmation(context.Background(), confirmedReservation())
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, mailer.sentByTemplate("tpl-confirmed-hu"),
		"exactly one customer confirmation must go out")
	assert.EqualValues(t, 1, invoicer.documentCount(),
		"exactly one receipt document must be issued")
	assert.EqualValues(t, 101, repo.documents["pay-1"])
}

func TestDispatchConfirmation_MailFailureLeavesFlagUnset(t *testing.T) {
	mailer := &fakeMailer{sendErr: errors.New("smtp down")}
	repo := newFakeFlagRepo()
	svc := NewService(mailer, &fakeInvoicer{}, repo, nopMetrics{}, testConfig(), nopLogger{})

	res := confirmedReservation()
	svc.DispatchConfirmation(context.Background(), res)

	assert.False(t, repo.emailSent["pay-1"], "a failed send must stay retryable")
	assert.False(t, res.Communication.ReservationEmailSent)
	// the receipt path is independent of the email path
	assert.True(t, repo.receiptSent["pay-1"])
	assert.EqualValues(t, 101, repo.documents["pay-1"])
}

func TestDispatchConfirmation_ReceiptFailureLeavesFlagUnset(t *testing.T) {
	repo := newFakeFlagRepo()
	svc := NewService(&fakeMailer{}, &fakeInvoicer{failAt: "document"}, repo, nopMetrics{}, testConfig(), nopLogger{})

	res := confirmedReservation()
	svc.DispatchConfirmation(context.Background(), res)

	assert.True(t, res.Communication.ReservationEmailSent)
	assert.False(t, repo.receiptSent["pay-1"], "a failed receipt must stay retryable")
	assert.Empty(t, repo.documents)
	assert.False(t, res.Communication.ReceiptSent)
}

func TestDispatchCancelation_SendsOnceAndMarks(t *testing.T) {
	mailer := &fakeMailer{}
	repo := newFakeFlagRepo()
	svc := NewService(mailer, &fakeInvoicer{}, repo, nopMetrics{}, testConfig(), nopLogger{})

	res := confirmedReservation()
	svc.DispatchCancelation(context.Background(), res)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "tpl-canceled-hu", mailer.sent[0].TemplateID)
	assert.True(t, repo.cancelSent["pay-1"])
	assert.True(t, res.Communication.CancelationEmailSent)

	// a second dispatch working on a fresh copy loses the claim and sends
	// nothing more
	svc.DispatchCancelation(context.Background(), confirmedReservation())
	assert.Len(t, mailer.sent, 1)
}

func TestDispatchReschedule_IncludesPreviousSlot(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewService(mailer, &fakeInvoicer{}, newFakeFlagRepo(), nopMetrics{}, testConfig(), nopLogger{})

	res := confirmedReservation()
	res.Slot = domain.Slot{Date: "2026-06-20", Hour: 18}
	svc.DispatchReschedule(context.Background(), res, domain.Slot{Date: "2026-06-15", Hour: 14})

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "tpl-changed-hu", mailer.sent[0].TemplateID)
	assert.Equal(t, "2026-06-15", mailer.sent[0].Variables["previousDate"])
	assert.Equal(t, "14:00", mailer.sent[0].Variables["previousTime"])
	assert.Equal(t, "2026-06-20", mailer.sent[0].Variables["date"])
}

func TestRetryMissing_RedispatchesPending(t *testing.T) {
	mailer := &fakeMailer{}
	repo := newFakeFlagRepo()
	pending := confirmedReservation()
	pending.Communication.ReservationEmailSent = true // only the receipt is missing
	repo.emailSent["pay-1"] = true
	repo.pending = []*domain.Reservation{pending}

	svc := NewService(mailer, &fakeInvoicer{}, repo, nopMetrics{}, testConfig(), nopLogger{})

	retried, err := svc.RetryMissing(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, retried)
	assert.Empty(t, mailer.sent)
	assert.True(t, repo.receiptSent["pay-1"])
	assert.EqualValues(t, 101, repo.documents["pay-1"])
}
