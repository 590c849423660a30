// Package common defines sentinel errors shared by repositories, services and
// the CLI. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrInvalidKind = errors.New("invalid list kind")
	ErrInvalidPlan = errors.New("invalid plan")

	// Configuration errors.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)
