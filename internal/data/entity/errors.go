package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrFlightNotFound  = errors.New("flight not found")
	ErrBookingNotFound = errors.New("booking not found")

	// ErrLockTimeout means the partition lock was not acquired within the
	// configured wait bound. The request had no side effects and can be
	// retried.
	ErrLockTimeout = errors.New("booking in progress for this flight, please retry")

	// ErrCapacityExceeded is only returned when strict capacity checking is
	// enabled; the default behavior never enforces capacity.
	ErrCapacityExceeded = errors.New("not enough seats left on this flight")
)

// ValidationError carries per-field messages for a malformed booking request.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
