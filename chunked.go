package wire

import (
	"io"

	"github.com/chaisql/wire/internal/encoding"
	"github.com/cockroachdb/errors"
)

// A chunked stream is a sequence of chunks, each a length prefix followed
// by that many bytes, where a zero length ends the current logical chunk:
//
//	len₁ bytes₁ len₂ bytes₂ ... 0
//
// A reader can skip to the end of the current logical chunk without
// decoding its contents.

// OutputChunked writes a chunked stream to a writer. Every flush of the
// buffer produces one chunk, so a logical chunk may span several.
type OutputChunked struct {
	*Output

	chunks *chunkSink
}

// NewOutputChunked returns an OutputChunked writing to w. The buffer
// defaults to DefaultChunkBufferSize bytes.
func NewOutputChunked(w io.Writer, opts *Options) *OutputChunked {
	o := opts.withDefaults(DefaultChunkBufferSize)

	cs := &chunkSink{writerSink{w: w}}
	out := &Output{
		maxCapacity: o.MaxBufferSize,
		codec:       o.Codec,
		fixedLength: o.FixedLength,
		dst:         cs,
	}
	out.bytes = make([]byte, o.BufferSize)
	return &OutputChunked{Output: out, chunks: cs}
}

// EndChunk flushes the buffered bytes and marks the end of the current
// logical chunk.
func (c *OutputChunked) EndChunk() error {
	if err := c.Flush(); err != nil {
		return err
	}
	return c.chunks.end()
}

type chunkSink struct {
	writerSink
}

func (s *chunkSink) flush(p []byte) error {
	if len(p) > 0 {
		var prefix [encoding.MaxChunkLengthLen]byte
		if err := s.write(encoding.EncodeUvarint32(prefix[:0], uint32(len(p)))); err != nil {
			return err
		}
	}
	return s.writerSink.flush(p)
}

func (s *chunkSink) end() error {
	if s.w == nil {
		return errors.New("no writer")
	}
	return s.write([]byte{0})
}

// InputChunked reads a chunked stream written by OutputChunked. Reads never
// cross the end of the current logical chunk: they underflow there until
// NextChunk is called.
type InputChunked struct {
	*Input

	chunks *chunkSource
}

// NewInputChunked returns an InputChunked reading from r. The buffer
// defaults to DefaultChunkBufferSize bytes.
func NewInputChunked(r io.Reader, opts *Options) *InputChunked {
	o := opts.withDefaults(DefaultChunkBufferSize)

	cs := &chunkSource{raw: readerSource{r: r}, remaining: -1}
	in := &Input{
		codec:       o.Codec,
		fixedLength: o.FixedLength,
		src:         cs,
	}
	in.bytes = make([]byte, o.BufferSize)
	return &InputChunked{Input: in, chunks: cs}
}

// NextChunk discards the rest of the current logical chunk, buffered or
// not, and positions the InputChunked at the start of the next one.
func (c *InputChunked) NextChunk() error {
	// Everything buffered belongs to the current chunk.
	c.total += int64(c.limit)
	c.position = 0
	c.limit = 0

	if c.chunks.remaining == -1 {
		if _, err := c.chunks.readLength(); err != nil {
			return err
		}
	}
	if c.chunks.remaining > 0 && len(c.bytes) == 0 {
		return tooSmall(1, 0)
	}
	for c.chunks.remaining > 0 {
		n, err := c.chunks.fill(c.bytes)
		if err != nil {
			return err
		}
		if n == -1 {
			return underflow(c.chunks.remaining, 0)
		}
		c.total += int64(n)
	}
	c.chunks.remaining = -1
	return nil
}

// chunkSource fills from the current chunk only. remaining is the number
// of bytes left in the current chunk, or -1 if the next length prefix has
// not been read yet.
type chunkSource struct {
	raw       readerSource
	remaining int
}

func (s *chunkSource) fill(p []byte) (int, error) {
	if s.remaining == -1 {
		ok, err := s.readLength()
		if err != nil {
			return 0, err
		}
		if !ok {
			return -1, nil
		}
	} else if s.remaining == 0 {
		return -1, nil
	}

	n, err := s.raw.fill(p[:min(s.remaining, len(p))])
	if err != nil || n == -1 {
		return n, err
	}
	s.remaining -= n
	if s.remaining == 0 {
		if _, err := s.readLength(); err != nil {
			return 0, err
		}
	}
	return n, nil
}

// readLength reads the next length prefix straight from the reader and
// reports whether a non-empty chunk follows. At the end of data the
// state is left unchanged.
func (s *chunkSource) readLength() (bool, error) {
	var length uint32
	for shift := uint(0); shift < 32; shift += 7 {
		b, err := s.raw.readByte()
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		length |= uint32(b&0x7F) << shift
		if b&0x80 == 0 {
			s.remaining = int(length)
			return length > 0, nil
		}
	}
	return false, errors.WithStack(ErrMalformedChunkLength)
}

func (s *chunkSource) reader() io.Reader {
	return s.raw.reader()
}

func (s *chunkSource) setReader(r io.Reader) {
	s.raw.setReader(r)
	s.remaining = -1
}

func (s *chunkSource) reset() {
	s.remaining = -1
}
