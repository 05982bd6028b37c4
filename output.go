package wire

import (
	"io"

	"github.com/cockroachdb/errors"
)

var (
	_ io.Writer     = (*Output)(nil)
	_ io.ByteWriter = (*Output)(nil)
	_ io.Closer     = (*Output)(nil)
)

// Output encodes values into a byte buffer. When bound to an io.Writer,
// the buffer is flushed to it whenever it fills up. Otherwise it grows,
// doubling its capacity, up to a maximum capacity.
//
// The encoded bytes are [0, Position()). An Output is not safe for
// concurrent use.
type Output struct {
	storage

	position    int
	maxCapacity int
	total       int64

	dst         sink
	codec       PrimitiveCodec
	fixedLength bool
}

// NewOutput returns an Output writing to memory. Its buffer starts at
// Options.BufferSize bytes and may grow up to Options.MaxBufferSize.
func NewOutput(opts *Options) *Output {
	o := opts.withDefaults(DefaultBufferSize)

	out := Output{
		maxCapacity: o.MaxBufferSize,
		codec:       o.Codec,
		fixedLength: o.FixedLength,
		dst:         &writerSink{},
	}
	out.bytes = make([]byte, o.BufferSize)
	return &out
}

// NewOutputBuffer returns an Output writing into b, which it may replace
// by a larger buffer up to maxBufferSize bytes. A maxBufferSize of
// Unlimited removes the cap.
func NewOutputBuffer(b []byte, maxBufferSize int, opts *Options) *Output {
	o := opts.withDefaults(len(b))

	out := Output{
		codec:       o.Codec,
		fixedLength: o.FixedLength,
		dst:         &writerSink{},
	}
	out.SetBuffer(b, maxBufferSize)
	return &out
}

// NewOutputWriter returns an Output flushing to w through a buffer of
// Options.BufferSize bytes.
func NewOutputWriter(w io.Writer, opts *Options) *Output {
	out := NewOutput(opts)
	out.dst.setWriter(w)
	return out
}

// NewDirectOutput is like NewOutputWriter but allocates its buffer outside
// the Go heap. w may be nil. The Output must be closed to release that
// memory.
func NewDirectOutput(w io.Writer, opts *Options) (*Output, error) {
	o := opts.withDefaults(DefaultBufferSize)

	out := Output{
		storage:     storage{direct: true},
		maxCapacity: o.MaxBufferSize,
		codec:       o.Codec,
		fixedLength: o.FixedLength,
		dst:         &writerSink{w: w},
	}
	if err := out.alloc(o.BufferSize); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetBuffer replaces the buffer with b and unbinds the writer. Writing
// starts at the beginning of b.
func (o *Output) SetBuffer(b []byte, maxBufferSize int) {
	if maxBufferSize == Unlimited {
		maxBufferSize = maxArrayCapacity
	}
	_ = o.adopt(b)
	o.maxCapacity = max(maxBufferSize, len(b))
	o.dst.setWriter(nil)
	o.Reset()
}

// SetWriter binds the Output to w. Position and total are reset; bytes
// not yet flushed are lost.
func (o *Output) SetWriter(w io.Writer) {
	o.dst.setWriter(w)
	o.Reset()
}

// Writer returns the writer the Output flushes to, or nil.
func (o *Output) Writer() io.Writer {
	return o.dst.writer()
}

// Buffer returns the backing slice of the Output. The encoded bytes are
// Buffer()[:Position()]. The slice is replaced when the buffer grows.
func (o *Output) Buffer() []byte {
	return o.bytes
}

// ToBytes returns a copy of the encoded bytes.
func (o *Output) ToBytes() []byte {
	b := make([]byte, o.position)
	copy(b, o.bytes[:o.position])
	return b
}

// Codec returns the fixed-width codec of the Output.
func (o *Output) Codec() PrimitiveCodec {
	return o.codec
}

// FixedLength reports whether WriteCompactInt32 and WriteCompactInt64
// write fixed-width integers.
func (o *Output) FixedLength() bool {
	return o.fixedLength
}

// SetFixedLength switches the WriteCompact* methods between varints and
// fixed 4 and 8 byte integers.
func (o *Output) SetFixedLength(fixed bool) {
	o.fixedLength = fixed
}

// MaxCapacity returns the largest size the buffer may grow to.
func (o *Output) MaxCapacity() int {
	return o.maxCapacity
}

// Position returns the offset of the next byte to write in the buffer.
func (o *Output) Position() int {
	return o.position
}

// SetPosition moves the write offset, discarding or exposing buffered bytes.
func (o *Output) SetPosition(position int) {
	o.position = position
}

// Total returns the number of bytes written since the last reset,
// including flushed ones.
func (o *Output) Total() int64 {
	return o.total + int64(o.position)
}

// Reset sets the position and the total to zero.
func (o *Output) Reset() {
	o.position = 0
	o.total = 0
}

// require ensures at least required bytes can be written at the current
// position, flushing or growing the buffer as needed.
func (o *Output) require(required int) error {
	if len(o.bytes)-o.position >= required {
		return nil
	}
	if err := o.Flush(); err != nil {
		return err
	}
	capacity := len(o.bytes)
	if capacity-o.position >= required {
		return nil
	}
	if required > o.maxCapacity-o.position {
		return overflow(required, o.maxCapacity-o.position, o.maxCapacity)
	}

	if capacity == 0 {
		capacity = minGrowth
	}
	for {
		capacity = min(capacity*2, o.maxCapacity)
		if capacity-o.position >= required {
			break
		}
	}
	return o.resize(capacity, o.position)
}

// Flush writes the buffered bytes to the writer. Without a writer it does
// nothing.
func (o *Output) Flush() error {
	if o.dst.writer() == nil {
		return nil
	}
	if err := o.dst.flush(o.bytes[:o.position]); err != nil {
		return err
	}
	o.total += int64(o.position)
	o.position = 0
	return nil
}

// Close flushes the Output, closes the writer if it is an io.Closer and
// releases direct memory. Errors from closing the writer are ignored.
func (o *Output) Close() error {
	err := o.Flush()
	if c, ok := o.dst.writer().(io.Closer); ok {
		_ = c.Close()
	}
	if rerr := o.release(); err == nil {
		err = rerr
	}
	return err
}

// Write writes all of p. It implements io.Writer.
func (o *Output) Write(p []byte) (int, error) {
	if err := o.WriteBytes(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteBytes writes all of p, in pieces if p is larger than the buffer.
func (o *Output) WriteBytes(p []byte) error {
	n := copy(o.bytes[o.position:], p)
	o.position += n
	p = p[n:]
	for len(p) > 0 {
		count := min(max(len(o.bytes), 1), len(p))
		if err := o.require(count); err != nil {
			return err
		}
		n = copy(o.bytes[o.position:], p[:count])
		o.position += n
		p = p[n:]
	}
	return nil
}

// sink is where an Output flushes its bytes to.
type sink interface {
	flush(p []byte) error
	writer() io.Writer
	setWriter(w io.Writer)
}

// flusher is implemented by writers that buffer, such as bufio.Writer and
// Output itself.
type flusher interface {
	Flush() error
}

type writerSink struct {
	w io.Writer
}

func (s *writerSink) flush(p []byte) error {
	if err := s.write(p); err != nil {
		return err
	}
	if f, ok := s.w.(flusher); ok {
		return errors.Wrap(f.Flush(), "cannot flush writer")
	}
	return nil
}

func (s *writerSink) write(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	n, err := s.w.Write(p)
	if err != nil {
		return errors.Wrap(err, "cannot write buffer")
	}
	if n < len(p) {
		return errors.WithStack(io.ErrShortWrite)
	}
	return nil
}

func (s *writerSink) writer() io.Writer {
	return s.w
}

func (s *writerSink) setWriter(w io.Writer) {
	s.w = w
}
