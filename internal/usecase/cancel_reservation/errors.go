package cancel_reservation

import "errors"

var (
	// ErrInvalidInput is returned on malformed request parameters
	ErrInvalidInput = errors.New("cancel_reservation: invalid input data")

	// ErrReservationNotFound is returned when the payment id is unknown
	ErrReservationNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrAlreadyCanceled is returned when the reservation was canceled before
	ErrAlreadyCanceled = errors.New("cancel_reservation: reservation already canceled")

	// ErrNotCancelable is returned when the reservation is not in a state
	// that can be canceled (not yet paid, or flagged uncancelable)
	ErrNotCancelable = errors.New("cancel_reservation: reservation cannot be canceled")

	// ErrInternal is returned on internal usecase failures
	ErrInternal = errors.New("cancel_reservation: internal error")
)
