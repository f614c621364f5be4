package detector

import "errors"

var (
	// ErrValidation marks client-supplied text that fails the length rule.
	ErrValidation = errors.New("validation failed")

	// ErrBatchTooLarge rejects oversized batches before any item is processed.
	ErrBatchTooLarge = errors.New("maximum 10 articles per batch")
)
