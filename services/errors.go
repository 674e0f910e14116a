package services

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is(err, ErrConflict) and so on to classify a service error.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInternal        = errors.New("internal error")
)

// Error carries a user-facing message together with its kind and, for
// internal failures, the underlying cause.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalidArgument(msg string) error {
	return &Error{Kind: ErrInvalidArgument, Msg: msg}
}

func notFound(msg string) error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}

func conflict(msg string) error {
	return &Error{Kind: ErrConflict, Msg: msg}
}

func internal(msg string, err error) error {
	return &Error{Kind: ErrInternal, Msg: msg, Err: err}
}

// Message returns the user-facing message of a service error, or "" if err is not one.
func Message(err error) string {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Msg
	}
	return ""
}
