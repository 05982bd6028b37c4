package kv

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

// A Snapshot is a read-only view of the streams committed when it was
// taken.
type Snapshot struct {
	Snapshot *pebble.Snapshot
	closed   bool
}

// NewReader opens a stream of the snapshot for reading. The reader must be
// closed before the snapshot.
func (s *Snapshot) NewReader(name string) (*StreamReader, error) {
	if s.closed {
		return nil, errors.WithStack(ErrClosed)
	}
	return newReader(s.Snapshot, name)
}

// Stat returns the descriptor of a stream of the snapshot.
func (s *Snapshot) Stat(name string) (*StreamInfo, error) {
	if s.closed {
		return nil, errors.WithStack(ErrClosed)
	}
	return stat(s.Snapshot, name)
}

// Streams returns the streams of the snapshot in name order.
func (s *Snapshot) Streams() ([]StreamInfo, error) {
	if s.closed {
		return nil, errors.WithStack(ErrClosed)
	}
	return streams(s.Snapshot)
}

func (s *Snapshot) Close() error {
	if s.closed {
		return errors.WithStack(ErrClosed)
	}
	s.closed = true

	return s.Snapshot.Close()
}
