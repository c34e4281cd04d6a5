package domain

import "errors"

var (
	// ErrInvalidInput marks malformed caller input: a negative AQI value or
	// an observation sequence that is out of order or repeats a date.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientData marks an empty observation sequence. A non-empty
	// sequence that simply triggers no rules is not an error.
	ErrInsufficientData = errors.New("insufficient data")
)
