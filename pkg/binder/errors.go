package binder

import "errors"

// Common binding errors
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrInvalidForm          = errors.New("invalid form data")
	ErrMissingContentType   = errors.New("missing content type")
	ErrInvalidTarget        = errors.New("invalid bind target")
	ErrBinderNotApplicable  = errors.New("binder not applicable")
)
