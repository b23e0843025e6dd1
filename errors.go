package cache

import "errors"

var (
	// ErrInvalidConfiguration is wrapped by every error New returns.
	ErrInvalidConfiguration = errors.New("cache: invalid configuration")

	// ErrClosed is returned by Apply once Close has been called.
	ErrClosed = errors.New("cache: closed")

	// ErrLoaderPanic is wrapped by the error Apply returns when the loader panics.
	ErrLoaderPanic = errors.New("cache: loader panicked")
)
