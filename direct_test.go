package wire_test

import (
	"bytes"
	"testing"

	"github.com/chaisql/wire"
	"github.com/stretchr/testify/require"
)

func TestDirect(t *testing.T) {
	var buf bytes.Buffer
	out, err := wire.NewDirectOutput(&buf, &wire.Options{BufferSize: 16, MaxBufferSize: wire.Unlimited})
	require.NoError(t, err)
	require.True(t, out.Direct())

	require.NoError(t, out.WriteString("direct memory"))
	require.NoError(t, out.WriteInt64s([]int64{1, 2, 3, 4}))
	require.NoError(t, out.Close())
	require.False(t, out.Direct())

	in, err := wire.NewDirectInput(bytes.NewReader(buf.Bytes()), &wire.Options{BufferSize: 16})
	require.NoError(t, err)
	s, err := in.ReadString()
	require.NoError(t, err)
	require.Equal(t, "direct memory", s)
	longs, err := in.ReadInt64s(4)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3, 4}, longs)
	require.NoError(t, in.Close())
}

func TestDirectGrowth(t *testing.T) {
	out, err := wire.NewDirectOutput(nil, &wire.Options{BufferSize: 4, MaxBufferSize: 1024})
	require.NoError(t, err)
	defer out.Close()

	payload := bytes.Repeat([]byte{7}, 300)
	require.NoError(t, out.WriteBytes(payload))
	require.Equal(t, payload, out.ToBytes())
	require.GreaterOrEqual(t, len(out.Buffer()), 300)
}
