package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateID indicates two records in one collection share an ID.
	ErrDuplicateID = errors.New("duplicate record id")

	// ErrUnsupportedFormat indicates a record file with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported record format")

	// ErrIndexRequired indicates the engine was built without a fuzzy index.
	// This is a setup failure, not a search outcome.
	ErrIndexRequired = errors.New("fuzzy index is required")

	// ErrSourceRequired indicates no record source is configured.
	ErrSourceRequired = errors.New("record source is required")

	// ErrReadOnly indicates the configured record source cannot be written to.
	ErrReadOnly = errors.New("record source is read-only")

	// ErrUnknownSetting indicates a configuration key that does not exist.
	ErrUnknownSetting = errors.New("unknown setting")
)
