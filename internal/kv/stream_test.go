package kv_test

import (
	"testing"
	"testing/iotest"

	"github.com/chaisql/wire"
	"github.com/chaisql/wire/internal/kv"
	"github.com/chaisql/wire/internal/testutil/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamReader(t *testing.T) {
	ng := builder(t, nil)
	writeStream(t, ng, "s", "abc", "", "defgh", "i")

	r, err := ng.NewReader("s")
	assert.NoError(t, err)
	assert.NoError(t, iotest.TestReader(r, []byte("abcdefghi")))
	assert.NoError(t, r.Close())

	_, err = r.Read(make([]byte, 1))
	assert.ErrorIs(t, err, kv.ErrClosed)
}

func TestOutputOverStream(t *testing.T) {
	ng := builder(t, nil)

	w, err := ng.NewWriter("values")
	assert.NoError(t, err)

	out := wire.NewOutputWriter(w, &wire.Options{BufferSize: 16})
	for i := int64(0); i < 100; i++ {
		_, err := out.WriteVarInt64(i*i*i, false)
		assert.NoError(t, err)
		assert.NoError(t, out.WriteString("value"))
	}
	assert.NoError(t, out.Flush())
	assert.NoError(t, w.Close())

	si, err := ng.Stat("values")
	assert.NoError(t, err)
	require.Equal(t, out.Total(), si.Size)
	require.Greater(t, si.Segments, int64(1))

	r, err := ng.NewReader("values")
	assert.NoError(t, err)
	in := wire.NewInputReader(r, &wire.Options{BufferSize: 16})
	for i := int64(0); i < 100; i++ {
		v, err := in.ReadVarInt64(false)
		assert.NoError(t, err)
		require.Equal(t, i*i*i, v)
		s, err := in.ReadString()
		assert.NoError(t, err)
		require.Equal(t, "value", s)
	}
	end, err := in.End()
	assert.NoError(t, err)
	require.True(t, end)
	assert.NoError(t, in.Close())
}

func TestChunksOverStream(t *testing.T) {
	ng := builder(t, nil)

	w, err := ng.NewWriter("chunks")
	assert.NoError(t, err)

	out := wire.NewOutputChunked(w, &wire.Options{BufferSize: 8})
	assert.NoError(t, out.WriteString("skipped chunk"))
	assert.NoError(t, out.EndChunk())
	assert.NoError(t, out.WriteString("kept"))
	assert.NoError(t, out.EndChunk())
	assert.NoError(t, w.Close())

	r, err := ng.NewReader("chunks")
	assert.NoError(t, err)
	defer r.Close()

	in := wire.NewInputChunked(r, &wire.Options{BufferSize: 8})
	assert.NoError(t, in.NextChunk())
	s, err := in.ReadString()
	assert.NoError(t, err)
	require.Equal(t, "kept", s)
	end, err := in.End()
	assert.NoError(t, err)
	require.True(t, end)
}
