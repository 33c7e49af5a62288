package create_reservation

import "errors"

var (
	// ErrInvalidInput is returned when required booking fields are missing or
	// malformed; nothing is persisted
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInvalidDate is returned when the picked date is today, in the past,
	// or beyond the booking horizon
	ErrInvalidDate = errors.New("create_reservation: date is not bookable")

	// ErrSlotConflict is returned when the target slot is blocked or occupied
	// at commit time; the transaction aborts with no partial write
	ErrSlotConflict = errors.New("create_reservation: slot is not available")

	// ErrGateway is returned when the payment gateway cannot start the payment
	ErrGateway = errors.New("create_reservation: payment gateway failure")

	// ErrInternal is returned on internal usecase failures
	ErrInternal = errors.New("create_reservation: internal error")
)
