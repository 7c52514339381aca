package field

import "errors"

var (
	// ErrInvalidSize indicates a non-positive grid side length.
	ErrInvalidSize = errors.New("field: size must be positive")

	// ErrInvalidIterations indicates a negative smoothing pass count.
	ErrInvalidIterations = errors.New("field: iterations must be non-negative")

	// ErrNilSource indicates Generate was called without a random source.
	ErrNilSource = errors.New("field: nil random source")
)
