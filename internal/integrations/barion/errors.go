package barion

import "errors"

var (
	// ErrPaymentRejected is returned when the gateway refuses to start the payment
	ErrPaymentRejected = errors.New("barion client: payment rejected")

	// ErrPaymentNotFound is returned when the gateway does not know the payment id
	ErrPaymentNotFound = errors.New("barion client: payment not found")

	// ErrInternal is returned on transport-level client failures
	ErrInternal = errors.New("barion client: internal error")

	// ErrInvalidResponse is returned when the gateway answers with an unexpected payload
	ErrInvalidResponse = errors.New("barion client: invalid response")
)
