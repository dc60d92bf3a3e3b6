// Package compose contains pure functions for rendering and validating the
// orchestration manifest of a planned cluster topology. This is part of the
// functional core - all functions are pure with no I/O.
package compose

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Rendering errors
	ErrNoImage = errors.New("manifest needs a container image")
	ErrNoNodes = errors.New("topology has no nodes to render")

	// Validation errors
	ErrEmptyManifest   = errors.New("manifest is empty")
	ErrInvalidManifest = errors.New("manifest is not a loadable compose document")
)

// ManifestError wraps errors with context about which service or section of
// the manifest failed.
type ManifestError struct {
	Service string // e.g., "ndbd_2"
	Message string
	Err     error
}

func (e *ManifestError) Error() string {
	if e.Service != "" {
		return fmt.Sprintf("%s: %s", e.Service, e.Message)
	}
	return e.Message
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// NewManifestError creates a new ManifestError.
func NewManifestError(service, message string, err error) *ManifestError {
	return &ManifestError{
		Service: service,
		Message: message,
		Err:     err,
	}
}
