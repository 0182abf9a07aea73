package core

import "net/http"

// HTTPError is a request failure with a fixed status code and a
// client-facing message.
type HTTPError struct {
	Code    int
	Message string
}

func (e HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates an HTTPError with a custom message.
func NewHTTPError(code int, message string) HTTPError {
	return HTTPError{Code: code, Message: message}
}

// NotFound is the standard "<resource> not found" failure.
func NotFound(resource string) HTTPError {
	return HTTPError{Code: http.StatusNotFound, Message: resource + " not found"}
}

// BadRequest is a client error with a single message.
func BadRequest(message string) HTTPError {
	return HTTPError{Code: http.StatusBadRequest, Message: message}
}

// Conflict reports a uniqueness or state conflict.
func Conflict(message string) HTTPError {
	return HTTPError{Code: http.StatusConflict, Message: message}
}

var (
	ErrUnauthorized = HTTPError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden    = HTTPError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrInternal     = HTTPError{Code: http.StatusInternalServerError, Message: "Internal server error"}
)
