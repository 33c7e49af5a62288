package notifications

import (
	"context"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
	"github.com/kamillakovacs/craftbeerspa/internal/integrations/mailersend"
)

// Mailer sends templated transactional emails
type Mailer interface {
	Send(ctx context.Context, email *mailersend.Email) error
}

// Invoicer issues and delivers receipt documents
type Invoicer interface {
	FindOrCreatePartner(ctx context.Context, customer domain.Customer) (int64, error)
	CreateDocument(ctx context.Context, res *domain.Reservation, partnerID int64) (int64, error)
	SendDocument(ctx context.Context, documentID int64, email string) error
}

// ReservationRepository records communication progress on the reservation
// row. The Claim methods are compare-and-set writes: a false return means
// another dispatcher already took the claim, and the caller must not send.
type ReservationRepository interface {
	ClaimReservationEmail(ctx context.Context, paymentID string) (bool, error)
	ReleaseReservationEmail(ctx context.Context, paymentID string) error
	ClaimReceipt(ctx context.Context, paymentID string) (bool, error)
	ReleaseReceipt(ctx context.Context, paymentID string) error
	SetReceiptDocument(ctx context.Context, paymentID string, documentID int64) error
	ClaimCancelationEmail(ctx context.Context, paymentID string) (bool, error)
	ReleaseCancelationEmail(ctx context.Context, paymentID string) error
	ListMissingCommunications(ctx context.Context, limit uint64) ([]*domain.Reservation, error)
}

// MetricsRecorder counts email and receipt outcomes
type MetricsRecorder interface {
	IncEmailsSent(template string)
	IncEmailFailures()
	IncReceiptsIssued()
	IncReceiptFailures()
}

// Logger is the logging interface the service depends on
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
