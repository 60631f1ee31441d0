package trace

import "errors"

// Error kinds reported by the identifier codec and the propagator.
// Callers branch with errors.Is; the wrapped message carries the
// offending input.
var (
	// ErrInvalidFormat indicates text that violates the wire grammar:
	// wrong length, misplaced delimiters, or non-lowercase-hex characters.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidLength indicates a source or destination buffer that is
	// too short from the requested offset.
	ErrInvalidLength = errors.New("invalid length")

	// ErrInvalidArgument indicates a missing required argument, such as
	// a nil carrier.
	ErrInvalidArgument = errors.New("invalid argument")
)
