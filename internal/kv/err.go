package kv

import "github.com/cockroachdb/errors"

// Common errors returned by the engine.
var (
	// ErrStreamNotFound is returned when the targeted stream doesn't exist.
	ErrStreamNotFound = errors.New("stream not found")

	// ErrStreamAlreadyExists is returned when attempting to create a stream
	// with the same name as an existing one.
	ErrStreamAlreadyExists = errors.New("stream already exists")

	// ErrInvalidStreamName is returned for empty names and names containing
	// the key separator.
	ErrInvalidStreamName = errors.New("invalid stream name")

	// ErrClosed is returned when using a writer, reader or snapshot after
	// Close.
	ErrClosed = errors.New("already closed")
)
