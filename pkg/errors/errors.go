package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes used across the service. Handlers map these to HTTP statuses;
// use cases never import net/http.
const (
	CodeInvalidArgument   = "InvalidArgument"
	CodeNotFound          = "NotFound"
	CodeInsufficientStock = "InsufficientStock"
	CodeUnauthorized      = "Unauthorized"
	CodeForbidden         = "Forbidden"
	CodeUnavailable       = "Unavailable"
	CodeInternal          = "Internal"
)

// Error is a classified error carried from the use-case layer to the
// transport layer.
type Error struct {
	Code    string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus returns the status code the transport layer should respond with.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeInvalidArgument, CodeInsufficientStock:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func New(code, message, details string) *Error {
	return &Error{Code: code, Message: message, Details: details}
}

func NewInvalidArgument(message, field string) *Error {
	details := ""
	if field != "" {
		details = "Field: " + field
	}
	return New(CodeInvalidArgument, message, details)
}

func NewNotFound(message string) *Error {
	return New(CodeNotFound, message, "")
}

// NewInsufficientStock formats the rejection the way callers depend on.
func NewInsufficientStock(available, requested int) *Error {
	return New(
		CodeInsufficientStock,
		fmt.Sprintf("Insufficient stock. Available: %d, Requested: %d", available, requested),
		"",
	)
}

func NewUnauthorized(message string) *Error {
	return New(CodeUnauthorized, message, "")
}

func NewForbidden(message string) *Error {
	return New(CodeForbidden, message, "")
}

// NewUnavailable wraps a store fault without leaking driver detail to the
// caller; the underlying error goes to the logs, not the response.
func NewUnavailable(operation string) *Error {
	return New(CodeUnavailable, "service temporarily unavailable", "Operation: "+operation)
}

func NewInternal(message string) *Error {
	return New(CodeInternal, message, "")
}

// As extracts a classified error, or wraps err as Internal when the layer
// below returned something unclassified.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewInternal("internal server error")
}
