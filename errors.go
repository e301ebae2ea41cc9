package spritekit

import "errors"

// Sentinel errors returned (wrapped) by cache and scheduler operations.
// Test with errors.Is.
var (
	// ErrInvalidArgument reports a rejected argument: empty names or paths,
	// an empty frame sequence, a non-positive duration or frame size.
	// Nothing is mutated when it is returned.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound reports an unknown sprite name or animation id.
	ErrNotFound = errors.New("not found")

	// ErrLoadFailure reports a missing, unreadable or undecodable image file.
	// The cache is left unchanged.
	ErrLoadFailure = errors.New("load failure")
)
