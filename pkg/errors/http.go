package errors

import "net/http"

// HTTPError is an error carrying an HTTP status and a response code.
type HTTPError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"error_code"`
	Message    string `json:"message"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates an HTTPError with the given status and message.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Code:       statusCode,
		Message:    message,
	}
}

// NewBadRequestHTTPError creates a 400 error.
func NewBadRequestHTTPError(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

// NewServiceUnavailableHTTPError creates a 503 error.
func NewServiceUnavailableHTTPError(message string) *HTTPError {
	return NewHTTPError(http.StatusServiceUnavailable, message)
}

// NewInternalServerError creates a 500 error with a generic message.
func NewInternalServerError() *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, "internal server error")
}
