package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	switch {
	case e.Msg != "" && e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	default:
		return "validation error"
	}
}

func (e ValidationError) Unwrap() error { return e.Err }

// ConflictError covers inventory conflicts: a seat mutation that would leave
// available_seats outside [0, capacity], or a delete blocked by live bookings.
type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type UnauthorizedError struct {
	Msg string
	Err error
}

func (e UnauthorizedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "not authenticated"
}

func (e UnauthorizedError) Unwrap() error { return e.Err }

type ForbiddenError struct {
	Msg string
	Err error
}

func (e ForbiddenError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "access denied"
}

func (e ForbiddenError) Unwrap() error { return e.Err }

// TimeoutError marks a backing-store round trip that hit its deadline.
// Callers may retry.
type TimeoutError struct {
	Op  string
	Err error
}

func (e TimeoutError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("storage timeout during %s", e.Op)
	}
	return "storage timeout"
}

func (e TimeoutError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// ErrAlreadyCancelled guards cancellation idempotency; surfaced as a 400.
var ErrAlreadyCancelled = errors.New("booking already cancelled")

// ErrNoSeats is the loser's outcome of a last-seat race.
var ErrNoSeats = errors.New("no seats available")

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}

func IsTimeout(err error) bool {
	var target TimeoutError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
