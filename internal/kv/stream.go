package kv

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

// StreamWriter appends segments to a stream. It implements io.WriteCloser
// and is not safe for concurrent use.
type StreamWriter struct {
	ng           *Engine
	name         string
	lower, upper []byte
	key          []byte
	batch        *pebble.Batch
	info         StreamInfo
	flushed      bool
	closed       bool
}

// Write stores p as the next segment of the stream. Empty writes are
// ignored.
func (w *StreamWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errors.WithStack(ErrClosed)
	}
	if len(p) == 0 {
		return 0, nil
	}

	w.key = appendSegmentKey(append(w.key[:0], w.lower...), uint64(w.info.Segments))
	if err := w.batch.Set(w.key, p, nil); err != nil {
		return 0, err
	}
	w.info.Segments++
	w.info.Size += int64(len(p))

	if err := w.ensureBatchSize(); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *StreamWriter) ensureBatchSize() error {
	if w.batch.Len() < w.ng.opts.MaxBatchSize {
		return nil
	}

	// The segments stay invisible until the descriptor is written by Close,
	// so this commit doesn't need durability.
	err := w.batch.Commit(pebble.NoSync)
	if err != nil {
		return err
	}
	w.flushed = true
	w.batch.Reset()

	return nil
}

// Close writes the stream descriptor and commits the remaining segments,
// making the stream visible.
func (w *StreamWriter) Close() error {
	if w.closed {
		return errors.WithStack(ErrClosed)
	}
	w.closed = true
	defer w.batch.Close()

	w.info.Name = w.name
	v, err := w.info.encode()
	if err != nil {
		return err
	}
	if err := w.batch.Set(buildStreamKey(w.name), v, nil); err != nil {
		return err
	}
	if err := w.batch.Commit(pebble.Sync); err != nil {
		return errors.Wrapf(err, "cannot commit stream %q", w.name)
	}

	w.ng.opts.Logger.Debug("stream committed",
		"name", w.name,
		"segments", w.info.Segments,
		"bytes", w.info.Size)
	return nil
}

// Discard abandons the stream, removing the segments already committed.
func (w *StreamWriter) Discard() error {
	if w.closed {
		return errors.WithStack(ErrClosed)
	}
	w.closed = true
	_ = w.batch.Close()

	if !w.flushed {
		return nil
	}
	return w.ng.DB.DeleteRange(w.lower, w.upper, pebble.Sync)
}

// Info returns the number of segments and bytes written so far.
func (w *StreamWriter) Info() StreamInfo {
	info := w.info
	info.Name = w.name
	return info
}

// StreamReader reads a stream back. It implements io.ReadCloser and is not
// safe for concurrent use.
type StreamReader struct {
	it      *pebble.Iterator
	cur     []byte
	started bool
	done    bool
	closed  bool
}

// Read copies the next bytes of the stream into p. It returns io.EOF after
// the last segment.
func (r *StreamReader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, errors.WithStack(ErrClosed)
	}
	if len(p) == 0 {
		return 0, nil
	}

	for len(r.cur) == 0 {
		if r.done {
			return 0, io.EOF
		}

		var ok bool
		if r.started {
			ok = r.it.Next()
		} else {
			ok = r.it.First()
			r.started = true
		}
		if !ok {
			if err := r.it.Error(); err != nil {
				return 0, err
			}
			r.done = true
			return 0, io.EOF
		}
		// The value stays valid until the iterator moves.
		r.cur = r.it.Value()
	}

	n := copy(p, r.cur)
	r.cur = r.cur[n:]
	return n, nil
}

// Close releases the underlying iterator.
func (r *StreamReader) Close() error {
	if r.closed {
		return errors.WithStack(ErrClosed)
	}
	r.closed = true
	r.cur = nil
	return r.it.Close()
}
