package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an id references no existing record. No
// mutation has happened when it is returned.
var ErrNotFound = errors.New("not found")

// ValidationError rejects bad input before any store mutation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

func Validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
