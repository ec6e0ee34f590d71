// Package internalerr holds the sentinel errors shared by the tweetlens
// packages. Callers match them with errors.Is.
package internalerr

import "errors"

var (
	// ErrInvalidConfig reports malformed phrase windows, k <= 0, unknown
	// languages or missing dependencies. Fatal to the call.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidInput reports records that cannot be processed, such as a
	// document without an id.
	ErrInvalidInput = errors.New("invalid input")

	ErrClosed           = errors.New("resource closed")
	ErrStoreUnavailable = errors.New("store unavailable")
)
