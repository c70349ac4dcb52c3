package config

import "errors"

// Validation errors returned by [Build] when the assembled configuration is
// unusable.
var (
	// ErrMissingPath indicates that no store file path was supplied through
	// any configuration source.
	ErrMissingPath = errors.New("no store path configured")
)
