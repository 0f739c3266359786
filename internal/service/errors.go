package service

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ErrRoomUnavailable is returned when the room is already held by a live
// reservation over an overlapping range, or is under maintenance.
var ErrRoomUnavailable = errors.New("room is not available for the requested dates")

// ErrInvalidTransition is returned when a reservation is not in a state
// that allows the requested operation.
var ErrInvalidTransition = errors.New("invalid reservation status transition")

// ValidationError reports bad caller input.  It is returned before the
// store is touched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
