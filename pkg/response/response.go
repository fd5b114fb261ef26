package response

import (
	"errors"
	"fmt"
)

// Error carries the HTTP status a domain failure should be reported with.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

func NewError(code int, err string) error {
	return &Error{code, errors.New(err)}
}

// Wrap keeps cause in the chain while reporting it under code.
func Wrap(code int, msg string, cause error) error {
	return &Error{code, fmt.Errorf("%s: %w", msg, cause)}
}
