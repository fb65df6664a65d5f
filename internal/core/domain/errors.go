package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown language, corpus source or norm.
	ErrUnsupportedType = errors.New("unsupported type")

	// Pipeline Errors.

	// ErrDataFormat indicates a malformed corpus: missing header,
	// short rows, unreadable source or empty fields.
	// Fatal at startup.
	ErrDataFormat = errors.New("data format error")

	// ErrInsufficientData indicates a training set Naive Bayes cannot learn
	// from: no records, or a single class.
	// Fatal at startup.
	ErrInsufficientData = errors.New("insufficient training data")

	// ErrValidation indicates a malformed inbound query.
	// The caller is at fault and the request is rejected.
	ErrValidation = errors.New("validation error")

	// ErrInternal indicates an unexpected failure while answering a valid query.
	// Details are logged, never returned to the caller.
	ErrInternal = errors.New("internal error")
)
