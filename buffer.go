package wire

import (
	"github.com/chaisql/wire/internal/memory"
	"github.com/cockroachdb/errors"
)

// storage owns the backing slice of an Input or an Output. When direct is
// set, every allocation comes from the memory package and must be released.
type storage struct {
	bytes  []byte
	region *memory.Region
	direct bool
}

func (s *storage) alloc(size int) error {
	if !s.direct {
		s.bytes = make([]byte, size)
		return nil
	}

	r, err := memory.Alloc(size)
	if err != nil {
		return err
	}
	if err := s.release(); err != nil {
		_ = r.Free()
		return err
	}
	s.region = r
	s.bytes = r.Bytes()
	return nil
}

// resize replaces the backing slice with one of the given size and keeps
// the first keep bytes.
func (s *storage) resize(size, keep int) error {
	old, oldRegion := s.bytes, s.region

	if !s.direct {
		b := make([]byte, size)
		copy(b, old[:keep])
		s.bytes = b
		return nil
	}

	r, err := memory.Alloc(size)
	if err != nil {
		return errors.Wrap(err, "cannot grow buffer")
	}
	copy(r.Bytes(), old[:keep])
	s.region = r
	s.bytes = r.Bytes()
	if oldRegion != nil {
		return oldRegion.Free()
	}
	return nil
}

// adopt makes b the backing slice. The caller keeps ownership of b.
func (s *storage) adopt(b []byte) error {
	err := s.release()
	s.bytes = b
	s.direct = false
	return err
}

// release frees direct memory, if any.
func (s *storage) release() error {
	if s.region == nil {
		return nil
	}
	r := s.region
	s.region = nil
	s.bytes = nil
	return r.Free()
}

// Direct reports whether the buffer was allocated by the memory package
// and must be released by Close.
func (s *storage) Direct() bool {
	return s.region != nil
}
