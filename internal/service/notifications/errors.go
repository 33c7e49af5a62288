package notifications

import "errors"

var (
	// ErrEmailFailed is returned when the email provider rejects a send
	ErrEmailFailed = errors.New("notifications: failed to send email")

	// ErrReceiptFailed is returned when receipt issuance fails
	ErrReceiptFailed = errors.New("notifications: failed to issue receipt")

	// ErrInternal is returned on internal service failures
	ErrInternal = errors.New("notifications: internal error")
)
