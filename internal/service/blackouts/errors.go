package blackouts

import "errors"

var (
	// ErrInvalidInput is returned on malformed request parameters
	ErrInvalidInput = errors.New("blackouts: invalid input data")

	// ErrInternal is returned on internal service failures
	ErrInternal = errors.New("blackouts: internal error")
)
