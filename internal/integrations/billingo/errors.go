package billingo

import "errors"

var (
	// ErrDocumentFailed is returned when the provider refuses to create or send a document
	ErrDocumentFailed = errors.New("billingo client: document operation failed")

	// ErrInternal is returned on transport-level client failures
	ErrInternal = errors.New("billingo client: internal error")

	// ErrInvalidResponse is returned when the provider answers with an unexpected payload
	ErrInvalidResponse = errors.New("billingo client: invalid response")
)
