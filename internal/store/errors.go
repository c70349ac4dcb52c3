package store

import "errors"

// Construction errors returned by [Open] before any file access happens.
var (
	// ErrEmptyPath indicates that Open was called without a file path.
	ErrEmptyPath = errors.New("empty store path")
	// ErrUnknownEncoding indicates that the configured text encoding is not
	// a recognized IANA charset name.
	ErrUnknownEncoding = errors.New("unknown text encoding")
)
