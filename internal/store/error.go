package store

import "errors"

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")

	// ErrWriteFailed wraps every backend or encoding failure on the write path.
	ErrWriteFailed = errors.New("could not save")

	ErrInvalidPatch = errors.New("patch must encode to a JSON object")
	ErrIDExhausted  = errors.New("could not generate a unique id")
)
