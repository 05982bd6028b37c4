package wire

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrBufferUnderflow is returned when an Input needs more bytes than its
	// source can provide.
	ErrBufferUnderflow = errors.New("buffer underflow")

	// ErrBufferOverflow is returned when an Output cannot grow its buffer
	// within its maximum capacity.
	ErrBufferOverflow = errors.New("buffer overflow")

	// ErrBufferTooSmall is returned when a single read requires more bytes
	// than the Input buffer can ever hold.
	ErrBufferTooSmall = errors.New("buffer too small")

	// ErrMalformedChunkLength is returned when a chunk length prefix does not
	// terminate within its maximum size.
	ErrMalformedChunkLength = errors.New("malformed chunk length")
)

// underflow returns ErrBufferUnderflow annotated with the shortfall.
func underflow(required, available int) error {
	return errors.Wrapf(ErrBufferUnderflow, "required: %d, available: %d", required, available)
}

func overflow(required, available, maxCapacity int) error {
	if required > maxCapacity {
		return errors.Wrapf(ErrBufferOverflow, "max capacity: %d, required: %d", maxCapacity, required)
	}
	return errors.Wrapf(ErrBufferOverflow, "available: %d, required: %d", available, required)
}

func tooSmall(required, capacity int) error {
	return errors.Wrapf(ErrBufferTooSmall, "capacity: %d, required: %d", capacity, required)
}
