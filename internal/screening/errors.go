package screening

import "errors"

var (
	// ErrUnsupportedFormat marks a resume whose container was not recognized or produced no text.
	ErrUnsupportedFormat = errors.New("unsupported resume format")
	// ErrExtractionDegraded marks a resume where some fields could not be extracted.
	ErrExtractionDegraded = errors.New("resume extraction degraded")
	// ErrInvalidJobRequirement is returned for job configuration that would invalidate every score.
	ErrInvalidJobRequirement = errors.New("invalid job requirement")
)
