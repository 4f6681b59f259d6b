package scheduling

import (
	"errors"
	"fmt"
)

var (
	// ErrSlotUnavailable is returned when the requested slot is not offered or already reserved.
	ErrSlotUnavailable = errors.New("slot is not available")
	// ErrInvalidTransition is returned when an action is not legal from the booking's status.
	ErrInvalidTransition = errors.New("invalid booking status transition")
	// ErrUnauthorized is returned when the actor lacks the role required for an action.
	ErrUnauthorized = errors.New("actor is not allowed to perform this action")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var valErr *ValidationError

	return errors.As(err, &valErr)
}
