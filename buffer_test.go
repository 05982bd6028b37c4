package wire_test

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"

	"github.com/chaisql/wire"
	"github.com/chaisql/wire/internal/testutil"
	"github.com/chaisql/wire/internal/testutil/assert"
	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var sample = []byte{
	11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26,
	31, 32, 33, 34, 35, 36, 37, 38, 39, 40, 41, 42, 43, 44, 45, 46,
	51, 52, 53, 54, 55, 56, 57, 58,
	61, 62, 63, 64, 65,
}

func TestOutputWriter(t *testing.T) {
	var buf bytes.Buffer
	out := wire.NewOutputWriter(&buf, &wire.Options{BufferSize: 2})
	require.NoError(t, out.WriteBytes(sample[:16]))
	require.NoError(t, out.WriteBytes(sample[16:32]))
	require.NoError(t, out.WriteBytes(sample[32:40]))
	require.NoError(t, out.WriteBytes(sample[40:]))
	require.NoError(t, out.Flush())

	require.Equal(t, sample, buf.Bytes())
	require.EqualValues(t, len(sample), out.Total())
	require.Zero(t, out.Position())
}

func TestOutputWriteBytes(t *testing.T) {
	out := wire.NewOutput(&wire.Options{BufferSize: 512})
	require.NoError(t, out.WriteBytes(sample[:16]))
	require.NoError(t, out.WriteBytes(sample[16:32]))
	require.NoError(t, out.WriteByte(51))
	require.NoError(t, out.WriteBytes(sample[33:40]))
	for _, b := range sample[40:] {
		require.NoError(t, out.WriteByte(b))
	}
	require.NoError(t, out.Flush())

	require.Equal(t, sample, out.ToBytes())
}

func TestInputRead(t *testing.T) {
	in := wire.NewInputReader(bytes.NewReader(sample), &wire.Options{BufferSize: 2})
	p := make([]byte, 1024)
	n, err := in.Read(p[512 : 512+len(sample)])
	require.NoError(t, err)
	require.Equal(t, len(sample), n)
	require.Equal(t, sample, p[512:512+n])

	in = wire.NewInput(sample, nil)
	n, err = in.Read(p[512:])
	require.NoError(t, err)
	require.Equal(t, len(sample), n)
	require.Equal(t, sample, p[512:512+n])

	n, err = in.Read(p)
	require.Equal(t, io.EOF, err)
	require.Zero(t, n)
}

func TestInputReadAll(t *testing.T) {
	in := wire.NewInputReader(iotest.HalfReader(bytes.NewReader(sample)), &wire.Options{BufferSize: 4})
	require.NoError(t, iotest.TestReader(in, sample))
}

func TestInputEnd(t *testing.T) {
	in := wire.NewInputReader(bytes.NewReader([]byte{123, 0, 0, 0}), nil)
	end, err := in.End()
	require.NoError(t, err)
	require.False(t, end)

	in.SetPosition(4)
	end, err = in.End()
	require.NoError(t, err)
	require.True(t, end)

	_, err = in.ReadByte()
	require.Equal(t, io.EOF, err)
}

func TestOverflow(t *testing.T) {
	out := wire.NewOutput(&wire.Options{BufferSize: 1})
	require.NoError(t, out.WriteByte(51))

	err := out.WriteByte(65)
	assert.ErrorIs(t, err, wire.ErrBufferOverflow)
	require.Contains(t, err.Error(), "buffer overflow")

	// A value larger than the max capacity is reported as such.
	out = wire.NewOutput(&wire.Options{BufferSize: 2, MaxBufferSize: 4})
	err = out.WriteInt64(1)
	assert.ErrorIs(t, err, wire.ErrBufferOverflow)
	require.Contains(t, err.Error(), "max capacity: 4")
}

func TestUnderflow(t *testing.T) {
	in := wire.NewInputReader(nil, &wire.Options{BufferSize: 1})
	_, err := in.ReadBytes(2)
	assert.ErrorIs(t, err, wire.ErrBufferUnderflow)

	in = wire.NewInput([]byte{1, 2, 3, 4}, nil)
	in.SetLimit(3)
	_, err = in.ReadInt32()
	assert.ErrorIs(t, err, wire.ErrBufferUnderflow)

	// The available bytes are kept.
	b, err := in.ReadUint8()
	require.NoError(t, err)
	require.EqualValues(t, 1, b)
}

func TestBufferTooSmall(t *testing.T) {
	in := wire.NewInputReader(bytes.NewReader(make([]byte, 16)), &wire.Options{BufferSize: 4})
	_, err := in.ReadInt64()
	assert.ErrorIs(t, err, wire.ErrBufferTooSmall)

	// Reads larger than the buffer are fine for byte slices.
	in = wire.NewInputReader(bytes.NewReader(make([]byte, 16)), &wire.Options{BufferSize: 4})
	b, err := in.ReadBytes(16)
	require.NoError(t, err)
	require.Len(t, b, 16)
}

func TestSmallBuffers(t *testing.T) {
	var buf bytes.Buffer
	out := wire.NewOutputWriter(&buf, nil)
	require.NoError(t, out.WriteBytes(make([]byte, 512)))
	require.NoError(t, out.WriteBytes(make([]byte, 512)))
	require.NoError(t, out.Flush())

	in := wire.NewInputReader(&buf, &wire.Options{BufferSize: 512})
	p := make([]byte, 512)
	require.NoError(t, in.ReadBytesTo(p))
	require.NoError(t, in.ReadBytesTo(p))
	require.EqualValues(t, 1024, in.Total())
}

func TestVerySmallBuffers(t *testing.T) {
	small := wire.NewOutput(&wire.Options{BufferSize: 4, MaxBufferSize: wire.Unlimited})
	large := wire.NewOutput(nil)
	for i := 0; i < 16; i++ {
		_, err := small.WriteVarInt32(92, false)
		require.NoError(t, err)
		_, err = large.WriteVarInt32(92, false)
		require.NoError(t, err)
	}

	if diff := cmp.Diff(large.ToBytes(), small.ToBytes()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestGrowth(t *testing.T) {
	payload := bytes.Repeat([]byte("0123456789"), 100)

	grown := wire.NewOutputBuffer(nil, 2048, nil)
	presized := wire.NewOutput(&wire.Options{BufferSize: 2048})
	for _, out := range []*wire.Output{grown, presized} {
		require.NoError(t, out.WriteBytes(payload))
		_, err := out.WriteVarInt64(-1, true)
		require.NoError(t, err)
		require.NoError(t, out.WriteString("end"))
	}

	require.Equal(t, presized.ToBytes(), grown.ToBytes())
	require.Equal(t, 2048, grown.MaxCapacity())
	require.LessOrEqual(t, len(grown.Buffer()), 2048)
}

func TestOutputZeroCapacity(t *testing.T) {
	out := wire.NewOutputBuffer(nil, 10000, nil)
	require.NoError(t, out.WriteString("Test string"))
	require.Equal(t, 11, out.Position())
	require.Len(t, out.Buffer(), 32)
}

func TestMaxBufferSize(t *testing.T) {
	// A max smaller than the buffer is raised to the buffer size.
	out := wire.NewOutput(&wire.Options{BufferSize: 2, MaxBufferSize: 1})
	require.Equal(t, 2, out.MaxCapacity())

	out.SetBuffer(make([]byte, 2), 1)
	require.Equal(t, 2, out.MaxCapacity())

	out.SetBuffer(make([]byte, 2), wire.Unlimited)
	require.NoError(t, out.WriteBytes(make([]byte, 100)))
}

func TestInputCompaction(t *testing.T) {
	data := make([]byte, 100)
	for i := range data {
		data[i] = byte(i)
	}

	in := wire.NewInputReader(testutil.ChunkyReader(bytes.NewReader(data), 7), &wire.Options{BufferSize: 10})
	for i := 0; i < 25; i++ {
		v, err := in.ReadInt32()
		require.NoError(t, err)
		want := int32(data[4*i]) | int32(data[4*i+1])<<8 | int32(data[4*i+2])<<16 | int32(data[4*i+3])<<24
		require.Equal(t, want, v)
		require.EqualValues(t, 4*(i+1), in.Total())
		require.LessOrEqual(t, in.Position(), in.Limit())
	}
}

func TestSkip(t *testing.T) {
	data := make([]byte, 100)
	data[99] = 42

	in := wire.NewInputReader(bytes.NewReader(data), &wire.Options{BufferSize: 8})
	require.NoError(t, in.Skip(99))
	b, err := in.ReadUint8()
	require.NoError(t, err)
	require.EqualValues(t, 42, b)

	err = in.Skip(1)
	assert.ErrorIs(t, err, wire.ErrBufferUnderflow)
}

func TestReaderErrors(t *testing.T) {
	t.Run("error after data", func(t *testing.T) {
		boom := errors.New("boom")
		r := io.MultiReader(bytes.NewReader([]byte{1, 2}), iotest.ErrReader(boom))
		in := wire.NewInputReader(iotest.DataErrReader(r), nil)

		b, err := in.ReadUint8()
		require.NoError(t, err)
		require.EqualValues(t, 1, b)
		b, err = in.ReadUint8()
		require.NoError(t, err)
		require.EqualValues(t, 2, b)

		_, err = in.ReadUint8()
		assert.ErrorIs(t, err, boom)
	})

	t.Run("no progress", func(t *testing.T) {
		in := wire.NewInputReader(testutil.StallingReader{}, nil)
		_, err := in.ReadUint8()
		assert.ErrorIs(t, err, io.ErrNoProgress)
	})

	t.Run("writer", func(t *testing.T) {
		out := wire.NewOutputWriter(shortWriter{}, &wire.Options{BufferSize: 4})
		require.NoError(t, out.WriteInt32(1))
		err := out.WriteInt32(2)
		assert.ErrorIs(t, err, io.ErrShortWrite)
	})
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	return len(p) / 2, nil
}

type closeRecorder struct {
	bytes.Buffer
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return errors.New("ignored")
}

func TestClose(t *testing.T) {
	var w closeRecorder
	out := wire.NewOutputWriter(&w, nil)
	require.NoError(t, out.WriteString("hello"))
	require.NoError(t, out.Close())
	require.True(t, w.closed)

	var r closeRecorder
	r.Write(w.Bytes())
	in := wire.NewInputReader(&r, nil)
	s, err := in.ReadString()
	require.NoError(t, err)
	require.Equal(t, "hello", s)
	require.NoError(t, in.Close())
	require.True(t, r.closed)
}

func TestRebind(t *testing.T) {
	out := wire.NewOutput(nil)
	require.NoError(t, out.WriteInt32(7))

	in := wire.NewInput(out.ToBytes(), nil)
	v, err := in.ReadInt32()
	require.NoError(t, err)
	require.EqualValues(t, 7, v)

	in.Reset()
	require.Zero(t, in.Total())
	v, err = in.ReadInt32()
	require.NoError(t, err)
	require.EqualValues(t, 7, v)

	in.SetReader(bytes.NewReader([]byte{8, 0, 0, 0}))
	require.Zero(t, in.Available())
	v, err = in.ReadInt32()
	require.NoError(t, err)
	require.EqualValues(t, 8, v)

	in.SetBuffer([]byte{9})
	require.Nil(t, in.Reader())
	b, err := in.ReadUint8()
	require.NoError(t, err)
	require.EqualValues(t, 9, b)
}
