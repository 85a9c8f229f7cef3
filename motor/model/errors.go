package model

import "errors"

// error kinds returned by the ingestors, match them with errors.Is.
var (
	// ErrMalformedInput is returned when the input is not syntactically valid JSON.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidStructure is returned when a required array is missing, is not an array,
	// or an element does not have the shape the engine consumes.
	ErrInvalidStructure = errors.New("invalid structure")

	// ErrMalformedURL is returned when a request URL cannot yield a hostname.
	ErrMalformedURL = errors.New("malformed url")

	// ErrInvalidTimestamp is returned when a timeline event timestamp cannot be parsed.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)
