package reschedule_reservation

import "errors"

var (
	// ErrInvalidInput is returned on malformed request parameters
	ErrInvalidInput = errors.New("reschedule_reservation: invalid input data")

	// ErrInvalidDate is returned when the target date is today, in the past
	// or beyond the booking horizon
	ErrInvalidDate = errors.New("reschedule_reservation: date is not bookable")

	// ErrReservationNotFound is returned when the payment id is unknown
	ErrReservationNotFound = errors.New("reschedule_reservation: reservation not found")

	// ErrNotReschedulable is returned when the reservation is canceled or
	// not yet paid
	ErrNotReschedulable = errors.New("reschedule_reservation: reservation cannot be rescheduled")

	// ErrSlotConflict is returned when the target slot is blacked out or
	// already taken; the reservation keeps its current slot
	ErrSlotConflict = errors.New("reschedule_reservation: slot is not available")

	// ErrInternal is returned on internal usecase failures
	ErrInternal = errors.New("reschedule_reservation: internal error")
)
