// Package apperr defines the domain error kinds shared by the repository,
// service and HTTP layers. Storage-native failures are translated into one
// of these kinds at the repository boundary; the service layer re-wraps
// them with context and the Fiber error handler maps them to statuses.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("item not found")
	ErrAlreadyExists   = errors.New("item already exists")
	ErrInvalidObject   = errors.New("invalid object")
	ErrCreationFailed  = errors.New("creation failed")
	ErrUpdateFailed    = errors.New("update failed")
	ErrDeleteFailed    = errors.New("delete failed")
	ErrExecutionFailed = errors.New("execution failed")
)

// Error carries a kind, a human-readable message and the original cause.
// errors.Is matches both the kind and anything in the cause chain.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// New builds a domain error of the given kind with no underlying cause.
func New(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds a domain error of the given kind around an underlying cause.
func Wrap(kind error, message string, cause error) error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Kind returns the outermost domain kind of err, or nil if err carries none.
func Kind(err error) error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	for _, kind := range []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrInvalidObject,
		ErrCreationFailed,
		ErrUpdateFailed,
		ErrDeleteFailed,
		ErrExecutionFailed,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
