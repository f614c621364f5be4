package classifier

import "errors"

var (
	// ErrModelUnavailable means no classifier could be loaded at startup.
	// The process stays up but refuses detection requests.
	ErrModelUnavailable = errors.New("classifier model unavailable")

	// ErrInferenceFailed is a per-request inference error, surfaced to the
	// caller as an internal failure and never retried automatically.
	ErrInferenceFailed = errors.New("inference failed")
)
