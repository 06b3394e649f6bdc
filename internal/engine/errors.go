package engine

import "errors"

// Error classes for copy failures. Failures wrap one of these with %w so
// callers can classify with errors.Is without parsing messages.
var (
	// ErrValidation reports an invalid job configuration, detected before
	// any file I/O happens.
	ErrValidation = errors.New("invalid job configuration")

	// ErrResumeState reports an unusable checkpoint: unparseable content,
	// or a recorded offset beyond the source file size. Not recoverable
	// automatically; a corrupt checkpoint cannot be safely guessed.
	ErrResumeState = errors.New("unusable resume state")

	// ErrInvariant reports internal pipeline desynchronization, such as a
	// stream cursor away from its expected position. Indicates a defect,
	// not an operator mistake.
	ErrInvariant = errors.New("pipeline invariant violated")
)
