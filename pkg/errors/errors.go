package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed application error with HTTP awareness. For
// errors decoded from API responses, Message carries the server-provided
// text verbatim so the UI can surface it unchanged.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New builds an Error with no underlying cause.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap builds an Error around an underlying cause.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Sentinel errors for the statuses the console distinguishes. Messages
// are written for the operator since they end up in banners.
var (
	ErrUnauthorized = New("UNAUTHORIZED", http.StatusUnauthorized, "session expired, please sign in again")
	ErrForbidden    = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrNotFound     = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict     = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation   = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrTimeout      = New("TIMEOUT", http.StatusGatewayTimeout, "the server took too long to respond")
	ErrUnavailable  = New("UNAVAILABLE", http.StatusBadGateway, "could not reach the server")
	ErrInternal     = New("INTERNAL_ERROR", http.StatusInternalServerError, "something went wrong")
)

// FromError normalises any error into an *Error, wrapping unknown
// errors as internal.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone copies err, overriding its message when one is given. Used to
// put a server-sent message on a sentinel without mutating it.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	out := *err
	if message != "" {
		out.Message = message
	}
	return &out
}

// UserMessage extracts the text the UI should show for err. Server-sent
// messages pass through untouched; anything else degrades to the
// generic fallback.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if appErr := FromError(err); appErr.Message != "" {
		return appErr.Message
	}
	return ErrInternal.Message
}
