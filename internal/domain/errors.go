package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicateEmail  = errors.New("user already exists")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUserNotFound    = fmt.Errorf("%w: user not found", ErrUnauthorized)
	ErrInvalidPassword = fmt.Errorf("%w: invalid password", ErrUnauthorized)
	ErrStorage         = errors.New("storage failure")
)

// ValidationError reports a missing or unusable request field.
// Msg is safe to show to clients.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Invalid returns a ValidationError with the given message.
func Invalid(msg string) error {
	return &ValidationError{Msg: msg}
}
