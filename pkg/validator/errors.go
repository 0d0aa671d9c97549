package validator

import "errors"

var (
	// ErrValidationFailed is returned when validation fails but no specific error is provided.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidDate is returned by ParseDate for input not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")
)
