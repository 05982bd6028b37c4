package wire

import (
	"io"

	"github.com/cockroachdb/errors"
)

// maxEmptyReads bounds the number of consecutive empty reads tolerated
// from a source before giving up with io.ErrNoProgress.
const maxEmptyReads = 100

var (
	_ io.Reader     = (*Input)(nil)
	_ io.ByteReader = (*Input)(nil)
	_ io.Closer     = (*Input)(nil)
)

// Input decodes values from a byte buffer. When bound to an io.Reader,
// the buffer is refilled from it as values are read.
//
// The valid bytes of the buffer are [Position(), Limit()). Bytes before
// the position have been consumed and may be discarded by the next
// refill, which is accounted for by Total().
//
// An Input is not safe for concurrent use.
type Input struct {
	storage

	position int
	limit    int
	total    int64

	src         source
	codec       PrimitiveCodec
	fixedLength bool

	// scratch space for string decoding
	units []uint16
}

// NewInput returns an Input reading the bytes of b. Reading past the end
// of b returns ErrBufferUnderflow.
func NewInput(b []byte, opts *Options) *Input {
	o := opts.withDefaults(len(b))

	in := Input{
		codec:       o.Codec,
		fixedLength: o.FixedLength,
		src:         &readerSource{},
	}
	in.SetBuffer(b)
	return &in
}

// NewInputReader returns an Input reading from r through a buffer of
// Options.BufferSize bytes.
func NewInputReader(r io.Reader, opts *Options) *Input {
	o := opts.withDefaults(DefaultBufferSize)

	in := Input{
		codec:       o.Codec,
		fixedLength: o.FixedLength,
		src:         &readerSource{r: r},
	}
	in.bytes = make([]byte, o.BufferSize)
	return &in
}

// NewDirectInput is like NewInputReader but allocates its buffer outside
// the Go heap. The Input must be closed to release that memory.
func NewDirectInput(r io.Reader, opts *Options) (*Input, error) {
	o := opts.withDefaults(DefaultBufferSize)

	in := Input{
		storage:     storage{direct: true},
		codec:       o.Codec,
		fixedLength: o.FixedLength,
		src:         &readerSource{r: r},
	}
	if err := in.alloc(o.BufferSize); err != nil {
		return nil, err
	}
	return &in, nil
}

// SetBuffer replaces the buffer with b and unbinds the reader. Position
// and total are reset and b is read from its start.
func (in *Input) SetBuffer(b []byte) {
	_ = in.adopt(b)
	in.position = 0
	in.limit = len(b)
	in.total = 0
	in.src.setReader(nil)
}

// Buffer returns the backing slice of the Input.
func (in *Input) Buffer() []byte {
	return in.bytes
}

// SetReader binds the Input to r, discarding any buffered bytes. r may be
// nil.
func (in *Input) SetReader(r io.Reader) {
	in.src.setReader(r)
	in.limit = 0
	in.Reset()
}

// Reader returns the reader the Input refills from, or nil.
func (in *Input) Reader() io.Reader {
	return in.src.reader()
}

// Codec returns the fixed-width codec of the Input.
func (in *Input) Codec() PrimitiveCodec {
	return in.codec
}

// FixedLength reports whether ReadCompactInt32 and ReadCompactInt64 read
// fixed-width integers.
func (in *Input) FixedLength() bool {
	return in.fixedLength
}

// SetFixedLength switches the ReadCompact* methods between varints and
// fixed 4 and 8 byte integers.
func (in *Input) SetFixedLength(fixed bool) {
	in.fixedLength = fixed
}

// Total returns the number of bytes read since the last reset.
func (in *Input) Total() int64 {
	return in.total + int64(in.position)
}

// SetTotal sets the number of bytes already discarded from the buffer.
func (in *Input) SetTotal(total int64) {
	in.total = total
}

// Position returns the offset of the next byte to read in the buffer.
func (in *Input) Position() int {
	return in.position
}

// SetPosition moves the read offset. It is not checked against the limit.
func (in *Input) SetPosition(position int) {
	in.position = position
}

// Limit returns the end of the valid bytes of the buffer.
func (in *Input) Limit() int {
	return in.limit
}

// SetLimit sets the end of the valid bytes of the buffer.
func (in *Input) SetLimit(limit int) {
	in.limit = limit
}

// Reset sets the position and the total to zero.
func (in *Input) Reset() {
	in.position = 0
	in.total = 0
	in.src.reset()
}

// fill reads more bytes into p, returning -1 once the source is exhausted.
func (in *Input) fill(p []byte) (int, error) {
	return in.src.fill(p)
}

// require ensures at least required bytes are available in the buffer
// and returns the number of available bytes. It may refill and compact
// the buffer, so callers must not hold on to in.bytes across the call.
func (in *Input) require(required int) (int, error) {
	remaining := in.limit - in.position
	if remaining >= required {
		return remaining, nil
	}
	capacity := len(in.bytes)
	if required > capacity {
		return 0, tooSmall(required, capacity)
	}

	// Try to fill the buffer.
	if remaining > 0 {
		count, err := in.fill(in.bytes[in.limit:])
		if err != nil {
			return 0, err
		}
		if count == -1 {
			return 0, underflow(required, remaining)
		}
		remaining += count
		if remaining >= required {
			in.limit += count
			return remaining, nil
		}
	}

	// Was not enough, compact and try again.
	in.compact(remaining)

	for remaining < required {
		count, err := in.fill(in.bytes[remaining:])
		if err != nil {
			in.limit = remaining
			return 0, err
		}
		if count == -1 {
			in.limit = remaining
			return 0, underflow(required, remaining)
		}
		remaining += count
	}

	in.limit = remaining
	return remaining, nil
}

// optional tries to make up to n bytes available. It returns the number
// of available bytes, capped at n, or -1 at the end of data.
func (in *Input) optional(n int) (int, error) {
	remaining := in.limit - in.position
	if remaining >= n {
		return n, nil
	}
	n = min(n, len(in.bytes))

	// Try to fill the buffer.
	count, err := in.fill(in.bytes[in.limit:])
	if err != nil {
		return 0, err
	}
	if count == -1 {
		if remaining == 0 {
			return -1, nil
		}
		return min(remaining, n), nil
	}
	remaining += count
	if remaining >= n {
		in.limit += count
		return n, nil
	}

	// Was not enough, compact and try again.
	in.compact(remaining)

	for remaining < n {
		count, err = in.fill(in.bytes[remaining:])
		if err != nil {
			in.limit = remaining
			return 0, err
		}
		if count == -1 {
			break
		}
		remaining += count
	}

	in.limit = remaining
	if remaining == 0 {
		return -1, nil
	}
	return min(remaining, n), nil
}

// compact moves the remaining bytes, including any just filled past the
// limit, to the start of the buffer.
func (in *Input) compact(remaining int) {
	copy(in.bytes, in.bytes[in.position:in.position+remaining])
	in.total += int64(in.position)
	in.position = 0
}

// Available returns the number of buffered bytes not yet read.
func (in *Input) Available() int {
	return in.limit - in.position
}

// End reports whether the Input has no more bytes to read, refilling the
// buffer if needed.
func (in *Input) End() (bool, error) {
	n, err := in.optional(1)
	if err != nil {
		return false, err
	}
	return n <= 0, nil
}

// Read reads up to len(p) bytes into p. It returns io.EOF only when no
// byte at all could be read.
func (in *Input) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	n := copy(p, in.bytes[in.position:in.limit])
	in.position += n
	for n < len(p) {
		count, err := in.optional(len(p) - n)
		if err != nil {
			return n, err
		}
		if count == -1 {
			break
		}
		copied := copy(p[n:], in.bytes[in.position:in.position+count])
		in.position += copied
		n += copied
	}

	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// ReadBytes reads exactly n bytes into a new slice.
func (in *Input) ReadBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	err := in.ReadBytesTo(b)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ReadBytesTo fills p entirely.
func (in *Input) ReadBytesTo(p []byte) error {
	n := copy(p, in.bytes[in.position:in.limit])
	in.position += n
	p = p[n:]
	for len(p) > 0 {
		if len(in.bytes) == 0 {
			return underflow(len(p), 0)
		}
		count := min(len(p), len(in.bytes))
		if _, err := in.require(count); err != nil {
			return err
		}
		n = copy(p, in.bytes[in.position:in.position+count])
		in.position += n
		p = p[n:]
	}
	return nil
}

// Skip discards n bytes.
func (in *Input) Skip(n int64) error {
	skip := min(int64(in.limit-in.position), n)
	for {
		in.position += int(skip)
		n -= skip
		if n <= 0 {
			return nil
		}
		if len(in.bytes) == 0 {
			return underflow(int(min(n, maxArrayCapacity)), 0)
		}
		skip = min(n, int64(len(in.bytes)))
		if _, err := in.require(int(skip)); err != nil {
			return err
		}
	}
}

// Close closes the reader, if it is an io.Closer, and releases direct
// memory. Errors from the reader are ignored.
func (in *Input) Close() error {
	if c, ok := in.src.reader().(io.Closer); ok {
		_ = c.Close()
	}
	return in.release()
}

// source is where an Input gets more bytes from.
type source interface {
	// fill reads up to len(p) bytes into p and returns how many were read,
	// or -1 if there is no more data.
	fill(p []byte) (int, error)
	reader() io.Reader
	setReader(r io.Reader)
	// reset drops any framing state.
	reset()
}

// readerSource fills from an io.Reader. An error returned together with
// data is kept and reported by the next fill.
type readerSource struct {
	r   io.Reader
	err error
}

func (s *readerSource) fill(p []byte) (int, error) {
	if s.r == nil {
		return -1, nil
	}
	if s.err != nil {
		return s.takeErr()
	}
	if len(p) == 0 {
		return 0, nil
	}

	for i := 0; i < maxEmptyReads; i++ {
		n, err := s.r.Read(p)
		if n > 0 {
			s.err = err
			return n, nil
		}
		if err != nil {
			s.err = err
			return s.takeErr()
		}
	}

	return 0, errors.WithStack(io.ErrNoProgress)
}

func (s *readerSource) takeErr() (int, error) {
	err := s.err
	if err == io.EOF {
		return -1, nil
	}
	s.err = nil
	return 0, errors.Wrap(err, "cannot fill buffer")
}

// readByte reads a single byte directly from the reader, bypassing any
// buffering done by the Input.
func (s *readerSource) readByte() (byte, error) {
	if s.r == nil {
		return 0, io.EOF
	}
	if s.err != nil {
		if s.err == io.EOF {
			return 0, io.EOF
		}
		_, err := s.takeErr()
		return 0, err
	}
	if br, ok := s.r.(io.ByteReader); ok {
		b, err := br.ReadByte()
		if err != nil && err != io.EOF {
			return 0, errors.Wrap(err, "cannot read byte")
		}
		return b, err
	}

	var buf [1]byte
	n, err := s.fill(buf[:])
	if err != nil {
		return 0, err
	}
	if n == -1 {
		return 0, io.EOF
	}
	return buf[0], nil
}

func (s *readerSource) reader() io.Reader {
	return s.r
}

func (s *readerSource) setReader(r io.Reader) {
	s.r = r
	s.err = nil
}

func (s *readerSource) reset() {}
