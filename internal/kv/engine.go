// Package kv stores named byte streams in Pebble.
//
// A stream is written through a StreamWriter, which implements io.Writer
// and stores every Write as one segment, and read back in order through a
// StreamReader, which implements io.Reader. Streams become visible when
// their writer is closed.
package kv

import (
	"io"
	"log/slog"

	"github.com/chaisql/wire"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

const (
	// 10MB
	defaultMaxBatchSize = 10 * 1024 * 1024
)

// Options configures an Engine. A nil *Options selects the defaults.
type Options struct {
	// Pebble options used by Open. Its Logger is replaced by one writing to
	// Logger when unset.
	Pebble *pebble.Options

	// Logger receives the engine and Pebble logs. Defaults to discarding
	// them.
	Logger *slog.Logger

	// MaxBatchSize is the size a writer batch can reach before it is
	// committed to Pebble. Defaults to 10MB.
	MaxBatchSize int
}

func (o *Options) withDefaults() Options {
	var opts Options
	if o != nil {
		opts = *o
	}

	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.MaxBatchSize <= 0 {
		opts.MaxBatchSize = defaultMaxBatchSize
	}

	return opts
}

// Engine stores streams in a Pebble database.
type Engine struct {
	DB *pebble.DB

	opts  Options
	owned bool
}

// Open opens or creates the Pebble database at path.
func Open(path string, opts *Options) (*Engine, error) {
	o := opts.withDefaults()

	var popts pebble.Options
	if o.Pebble != nil {
		popts = *o.Pebble
	}
	if popts.Logger == nil {
		popts.Logger = NewPebbleLogger(o.Logger)
	}

	db, err := pebble.Open(path, &popts)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %q", path)
	}

	o.Logger.Debug("engine opened", "path", path)
	return &Engine{DB: db, opts: o, owned: true}, nil
}

// NewEngine returns an Engine storing streams in db. Closing the engine
// does not close db.
func NewEngine(db *pebble.DB, opts *Options) *Engine {
	return &Engine{DB: db, opts: opts.withDefaults()}
}

// Close the engine and, if it was created by Open, the Pebble database.
func (e *Engine) Close() error {
	if !e.owned {
		return nil
	}
	return e.DB.Close()
}

// NewWriter starts a new stream. The stream is not visible until the
// writer is closed. There must be at most one writer per name.
func (e *Engine) NewWriter(name string) (*StreamWriter, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	ok, err := exists(e.DB, buildStreamKey(name))
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, errors.Wrapf(ErrStreamAlreadyExists, "%q", name)
	}

	// Clear segments left behind by a writer that was never closed.
	lower, upper := segmentBounds(name)
	batch := e.DB.NewBatch()
	if err := batch.DeleteRange(lower, upper, nil); err != nil {
		_ = batch.Close()
		return nil, err
	}

	return &StreamWriter{
		ng:    e,
		name:  name,
		lower: lower,
		upper: upper,
		key:   make([]byte, 0, len(lower)+8),
		batch: batch,
	}, nil
}

// NewReader opens a committed stream for reading.
func (e *Engine) NewReader(name string) (*StreamReader, error) {
	return newReader(e.DB, name)
}

// Stat returns the descriptor of a committed stream.
func (e *Engine) Stat(name string) (*StreamInfo, error) {
	return stat(e.DB, name)
}

// Streams returns the committed streams in name order.
func (e *Engine) Streams() ([]StreamInfo, error) {
	return streams(e.DB)
}

// DeleteStream deletes a committed stream and all its segments.
func (e *Engine) DeleteStream(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	key := buildStreamKey(name)
	ok, err := exists(e.DB, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(ErrStreamNotFound, "%q", name)
	}

	b := e.DB.NewBatch()
	defer b.Close()

	lower, upper := segmentBounds(name)
	if err := b.DeleteRange(lower, upper, nil); err != nil {
		return err
	}
	if err := b.Delete(key, nil); err != nil {
		return err
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return err
	}

	e.opts.Logger.Debug("stream deleted", "name", name)
	return nil
}

// NewSnapshot returns a consistent, read-only view of the committed
// streams.
func (e *Engine) NewSnapshot() *Snapshot {
	return &Snapshot{Snapshot: e.DB.NewSnapshot()}
}

// StreamInfo describes a committed stream.
type StreamInfo struct {
	Name string
	// Segments is the number of writes the stream is made of.
	Segments int64
	// Size is the total number of bytes of the stream.
	Size int64
}

// encode writes the descriptor value of a stream.
func (si *StreamInfo) encode() ([]byte, error) {
	out := wire.NewOutput(&wire.Options{BufferSize: 2 * wire.VarInt64Len(-1, true)})
	if _, err := out.WriteVarInt64(si.Segments, true); err != nil {
		return nil, err
	}
	if _, err := out.WriteVarInt64(si.Size, true); err != nil {
		return nil, err
	}
	return out.ToBytes(), nil
}

func (si *StreamInfo) decode(v []byte) error {
	in := wire.NewInput(v, nil)

	var err error
	si.Segments, err = in.ReadVarInt64(true)
	if err != nil {
		return errors.Wrapf(err, "invalid descriptor for stream %q", si.Name)
	}
	si.Size, err = in.ReadVarInt64(true)
	if err != nil {
		return errors.Wrapf(err, "invalid descriptor for stream %q", si.Name)
	}
	return nil
}
