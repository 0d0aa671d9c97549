package handler

import (
	"errors"
	"net/http"
)

var (
	// ErrNilResponse indicates a handler returned nil instead of a Response.
	ErrNilResponse = errors.New("handler returned nil response")
)

// HTTPError is an error carrying an HTTP status code and a translation key.
type HTTPError struct {
	Code int    // HTTP status code
	Key  string // Translation key, e.g. "errors.not_found"
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Key
}

var (
	ErrBadRequest            = HTTPError{Code: http.StatusBadRequest, Key: "errors.bad_request"}
	ErrNotFound              = HTTPError{Code: http.StatusNotFound, Key: "errors.not_found"}
	ErrMethodNotAllowed      = HTTPError{Code: http.StatusMethodNotAllowed, Key: "errors.method_not_allowed"}
	ErrRequestEntityTooLarge = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "errors.request_entity_too_large"}
	ErrUnsupportedMediaType  = HTTPError{Code: http.StatusUnsupportedMediaType, Key: "errors.unsupported_media_type"}
	ErrUnprocessableEntity   = HTTPError{Code: http.StatusUnprocessableEntity, Key: "errors.unprocessable_entity"}
	ErrTooManyRequests       = HTTPError{Code: http.StatusTooManyRequests, Key: "errors.too_many_requests"}
	ErrServiceUnavailable    = HTTPError{Code: http.StatusServiceUnavailable, Key: "errors.service_unavailable"}
	ErrInternalServerError   = HTTPError{Code: http.StatusInternalServerError, Key: "errors.internal_server_error"}
)

// NewHTTPError creates an HTTP error with the given status code and translation key.
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}
