package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFlightNotFound   = errors.New("flight not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrScheduleConflict = errors.New("schedule conflict")
	ErrInvalidSchedule  = errors.New("invalid schedule")
	ErrCapacityExceeded = errors.New("capacity exceeded")
)

// ValidationError carries a field-level message for malformed input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
