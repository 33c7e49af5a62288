package domain

import "time"

// PaymentStatus represents the payment state of a reservation
type PaymentStatus string

const (
	StatusPrepared  PaymentStatus = "prepared"
	StatusSucceeded PaymentStatus = "succeeded"
	StatusCanceled  PaymentStatus = "canceled_reservation"
)

// CanceledBy records who canceled a reservation. Empty means not canceled.
type CanceledBy string

const (
	CanceledByNone      CanceledBy = ""
	CanceledByUser      CanceledBy = "user"
	CanceledByPhoneCall CanceledBy = "phone_call"
	CanceledByAdmin     CanceledBy = "admin"
)

// Communication tracks which customer communications were already sent,
// so that repeated payment confirmations stay idempotent.
type Communication struct {
	ReservationEmailSent     bool
	ReceiptSent              bool
	RescheduleEmailSentCount int
	CancelationEmailSent     bool
}

// Customer holds the billing and contact details captured with a reservation
type Customer struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
	Address     string
	City        string
	CountryCode string
	PostCode    string
}

// Reservation represents a spa reservation in the system.
// Identity is the payment identifier assigned when the draft is prepared.
type Reservation struct {
	PaymentID     string
	TransactionID string
	ReservationID *int64 // external invoice document id, set once the receipt is issued

	Slot           Slot
	DateOfPurchase time.Time
	NumberOfGuests int
	NumberOfTubs   int
	Price          float64
	Customer       Customer
	Locale         string
	Requirements   *string

	PaymentStatus PaymentStatus
	Canceled      CanceledBy
	Uncancelable  bool
	Communication Communication

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCanceled returns true if the reservation has been canceled
func (r *Reservation) IsCanceled() bool {
	return r.Canceled != CanceledByNone || r.PaymentStatus == StatusCanceled
}

// IsSucceeded returns true if payment has been confirmed
func (r *Reservation) IsSucceeded() bool {
	return r.PaymentStatus == StatusSucceeded
}

// CanBeCancelled returns true if the reservation can be cancelled.
// Only paid reservations are cancellable, and only when not marked uncancelable.
func (r *Reservation) CanBeCancelled() bool {
	return r.PaymentStatus == StatusSucceeded && !r.IsCanceled() && !r.Uncancelable
}

// CanBeRescheduled returns true if the reservation date may still be changed
func (r *Reservation) CanBeRescheduled() bool {
	return r.PaymentStatus == StatusSucceeded && !r.IsCanceled()
}

// HoldsSlot reports whether the reservation occupies its slot at the given
// moment. A succeeded reservation holds its slot until canceled. A prepared
// reservation holds it only while the payment window is open; once the window
// expires the slot is released without any write.
func (r *Reservation) HoldsSlot(now time.Time, preparedTTL time.Duration) bool {
	if r.IsCanceled() {
		return false
	}
	switch r.PaymentStatus {
	case StatusSucceeded:
		return true
	case StatusPrepared:
		return now.Sub(r.DateOfPurchase) <= preparedTTL
	default:
		return false
	}
}
