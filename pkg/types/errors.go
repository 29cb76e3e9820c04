package types

import "errors"

// Domain errors. Every error aborts the whole split operation and propagates
// unmodified to the caller; there is no local recovery or partial result.
var (
	// ErrInvalidBudget is returned when a packer is configured with a
	// token budget that is not a positive integer.
	ErrInvalidBudget = errors.New("token budget must be positive")

	// ErrInputNotFound is returned when the source path does not exist.
	ErrInputNotFound = errors.New("input not found")

	// ErrMissingHeader is returned when a tabular flush is attempted (or
	// the stream ends) before any header line has been captured.
	ErrMissingHeader = errors.New("missing header: no non-blank line in tabular input")

	// ErrUnsupportedMultiline is returned when tabular input contains a
	// quoted field spanning multiple physical lines. That mode is
	// explicitly unimplemented, not silently approximated.
	ErrUnsupportedMultiline = errors.New("multiline quoted fields are not supported")

	// ErrTokenization is returned when an exact-mode counting call fails
	// in a way not covered by the counter's internal fallback.
	ErrTokenization = errors.New("tokenization failed")
)
