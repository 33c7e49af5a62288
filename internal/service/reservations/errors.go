package reservations

import "errors"

var (
	// ErrInvalidInput is returned on malformed request parameters
	ErrInvalidInput = errors.New("reservations: invalid input data")

	// ErrReservationNotFound is returned when the payment id is unknown
	ErrReservationNotFound = errors.New("reservations: reservation not found")

	// ErrInternal is returned on internal service failures
	ErrInternal = errors.New("reservations: internal error")
)
