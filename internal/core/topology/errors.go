// Package topology contains pure functions for planning a deployable cluster
// layout from a declarative ClusterSpec. This is part of the functional core -
// all functions are pure with no I/O.
package topology

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Count validation errors
	ErrTooFewMgmNodes  = errors.New("cluster needs at least one management node")
	ErrTooFewDataNodes = errors.New("cluster needs at least one data node")

	// Replication validation errors
	ErrBadReplicationFactor = errors.New("replication factor must be at least 1")
	ErrUnevenNodeGroups     = errors.New("data node count must be divisible by the replication factor")
)

// SpecError wraps errors with context about which ClusterSpec field failed
// validation.
type SpecError struct {
	Field   string // e.g., "data_count"
	Message string
	Err     error
}

func (e *SpecError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *SpecError) Unwrap() error {
	return e.Err
}

// NewSpecError creates a new SpecError.
func NewSpecError(field, message string, err error) *SpecError {
	return &SpecError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
