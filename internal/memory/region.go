// Package memory allocates buffers outside the Go heap.
//
// A Region is a fixed-size byte slice whose lifetime is managed by the
// caller: it must be released with Free once no slice derived from it is
// in use. On platforms without anonymous mappings a Region falls back to
// a heap slice and Free only drops the reference.
package memory

import (
	"github.com/cockroachdb/errors"
)

// ErrFreed is returned when using a Region after Free.
var ErrFreed = errors.New("memory region already freed")

// Region is a block of memory allocated with Alloc.
type Region struct {
	b      []byte
	mapped bool
}

// Alloc returns a zeroed Region of the given size.
func Alloc(size int) (*Region, error) {
	if size < 0 {
		return nil, errors.Newf("invalid region size %d", size)
	}
	if size == 0 {
		return &Region{b: []byte{}}, nil
	}

	b, mapped, err := mmap(size)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot allocate %d bytes", size)
	}

	return &Region{b: b, mapped: mapped}, nil
}

// Bytes returns the memory of the region. The slice must not be used
// after Free.
func (r *Region) Bytes() []byte {
	return r.b
}

// Len returns the size of the region.
func (r *Region) Len() int {
	return len(r.b)
}

// Mapped reports whether the region lives outside the Go heap.
func (r *Region) Mapped() bool {
	return r.mapped
}

// Free releases the region. Calling Free twice returns ErrFreed.
func (r *Region) Free() error {
	if r.b == nil {
		return errors.WithStack(ErrFreed)
	}

	b := r.b
	r.b = nil
	if !r.mapped || len(b) == 0 {
		return nil
	}

	return errors.Wrap(munmap(b), "cannot free region")
}
