package synth

import "errors"

// Sentinel errors for generation failures
var (
	ErrNegativeCount = errors.New("record count must not be negative")
	ErrOpenOutput    = errors.New("failed to open output")
	ErrWriteOutput   = errors.New("failed to write output")
	ErrCloseOutput   = errors.New("failed to close output")
	ErrOrderID       = errors.New("failed to generate order id")
)
