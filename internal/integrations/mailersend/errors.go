package mailersend

import "errors"

var (
	// ErrSendFailed is returned when the provider refuses the email
	ErrSendFailed = errors.New("mailersend client: send failed")

	// ErrInternal is returned on transport-level client failures
	ErrInternal = errors.New("mailersend client: internal error")
)
