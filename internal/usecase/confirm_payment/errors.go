package confirm_payment

import "errors"

var (
	// ErrInvalidInput is returned on malformed request parameters
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrReservationNotFound is returned when the payment id is unknown
	ErrReservationNotFound = errors.New("confirm_payment: reservation not found")

	// ErrReservationCanceled is returned when confirmation arrives for an
	// already canceled reservation
	ErrReservationCanceled = errors.New("confirm_payment: reservation is canceled")

	// ErrPaymentNotCompleted is returned when the gateway reports the payment
	// as anything other than succeeded; the reservation stays prepared
	ErrPaymentNotCompleted = errors.New("confirm_payment: payment not completed")

	// ErrGateway is returned when the gateway state lookup fails; the
	// reservation stays prepared and the callback may be retried
	ErrGateway = errors.New("confirm_payment: payment gateway failure")

	// ErrInternal is returned on internal usecase failures
	ErrInternal = errors.New("confirm_payment: internal error")
)
