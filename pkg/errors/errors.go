package errors

import (
	"errors"
	"fmt"
)

// Error represents a typed console error. Code identifies the error class
// from the failure taxonomy; Message is what the screen shows the user.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors by code so sentinels survive Clone and Wrap.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e != nil && t != nil && e.Code == t.Code
}

// New creates a new Error instance.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Predefined errors for the failure classes every screen handles.
var (
	// ErrValidation: local, pre-submission, never reaches the network.
	ErrValidation = New("VALIDATION_ERROR", "validation failed")
	// ErrApplication: the backend responded but declined the operation; the
	// message is backend-supplied and shown verbatim.
	ErrApplication = New("APPLICATION_ERROR", "request declined by server")
	// ErrTransport: no interpretable response (timeout, DNS, reset).
	ErrTransport = New("TRANSPORT_ERROR", "could not reach the server, please try again")
	// ErrBusy: a mutation is already in flight on this screen.
	ErrBusy = New("BUSY", "another operation is still in progress")

	ErrUnauthorized = New("UNAUTHORIZED", "session expired, please log in again")
	ErrNotFound     = New("NOT_FOUND", "resource not found")
	ErrInternal     = New("INTERNAL_ERROR", "internal error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsApplication reports whether err is a backend application-level decline.
func IsApplication(err error) bool {
	return errors.Is(err, ErrApplication)
}
