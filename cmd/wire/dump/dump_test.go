package dump_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chaisql/wire"
	"github.com/chaisql/wire/cmd/wire/dump"
	"github.com/chaisql/wire/internal/kv"
	"github.com/chaisql/wire/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestChunks(t *testing.T) {
	var buf bytes.Buffer
	out := wire.NewOutputChunked(&buf, &wire.Options{BufferSize: 8})
	require.NoError(t, out.WriteBytes([]byte{1}))
	require.NoError(t, out.EndChunk())
	require.NoError(t, out.WriteBytes(bytes.Repeat([]byte{2}, 20)))
	require.NoError(t, out.EndChunk())
	require.NoError(t, out.EndChunk())
	require.NoError(t, out.WriteBytes([]byte{3, 3}))
	require.NoError(t, out.Flush())

	var got bytes.Buffer
	err := dump.Chunks(&got, &buf, 16)
	require.NoError(t, err)
	require.Equal(t, `chunk 0: 1 bytes in 1 pieces
chunk 1: 20 bytes in 3 pieces
chunk 2: 0 bytes in 0 pieces
chunk 3: 2 bytes in 1 pieces (unterminated)
`, got.String())
}

func TestChunksTruncated(t *testing.T) {
	var got bytes.Buffer
	err := dump.Chunks(&got, bytes.NewReader([]byte{5, 1, 2}), 16)
	require.ErrorIs(t, err, wire.ErrBufferUnderflow)
}

func TestPebble(t *testing.T) {
	pdb := testutil.NewMemPebble(t)
	ng := kv.NewEngine(pdb, nil)

	for _, name := range []string{"a", "b"} {
		w, err := ng.NewWriter(name)
		require.NoError(t, err)
		_, err = w.Write([]byte{0xAB})
		require.NoError(t, err)
		_, err = w.Write([]byte{0xCD})
		require.NoError(t, err)
		require.NoError(t, w.Close())
	}

	var got bytes.Buffer
	require.NoError(t, dump.Pebble(&got, pdb, dump.PebbleOptions{}))
	lines := strings.Split(strings.TrimSpace(got.String()), "\n")
	// Two descriptors, a blank line, then two groups of two segments.
	require.Len(t, lines, 2+1+2+1+2)
	require.True(t, strings.HasPrefix(lines[0], `"__wire.stream\x1fa": `))
	require.True(t, strings.HasSuffix(lines[3], ": ab"))
	require.True(t, strings.HasSuffix(lines[4], ": cd"))

	got.Reset()
	require.NoError(t, dump.Pebble(&got, pdb, dump.PebbleOptions{KeysOnly: true}))
	require.NotContains(t, got.String(), ": ")
}
