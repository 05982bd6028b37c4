package wire_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/chaisql/wire"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/cpu"
)

func TestCodecs(t *testing.T) {
	require.True(t, wire.Portable.Portable())
	require.False(t, wire.Native.Portable())
	require.Equal(t, "Portable", wire.Portable.String())
	require.Equal(t, "Native", wire.Native.String())

	out := wire.NewOutput(&wire.Options{Codec: wire.Native})
	require.Equal(t, wire.Native, out.Codec())
	require.NoError(t, out.WriteInt32(0x01020304))
	require.NoError(t, out.WriteInt64s([]int64{0x0102030405060708}))

	var want []byte
	if cpu.IsBigEndian {
		want = binary.BigEndian.AppendUint32(nil, 0x01020304)
		want = binary.BigEndian.AppendUint64(want, 0x0102030405060708)
	} else {
		want = binary.LittleEndian.AppendUint32(nil, 0x01020304)
		want = binary.LittleEndian.AppendUint64(want, 0x0102030405060708)
	}
	require.Equal(t, want, out.ToBytes())
}

func TestNativeRoundTrip(t *testing.T) {
	opts := wire.Options{Codec: wire.Native, BufferSize: 8}

	var buf bytes.Buffer
	out := wire.NewOutputWriter(&buf, &opts)
	require.NoError(t, out.WriteFloat64(3.5))
	require.NoError(t, out.WriteInt16s([]int16{1, -1, 300}))
	require.NoError(t, out.WriteFloat32s([]float32{0.25, 8}))
	_, err := out.WriteVarInt32(-7, false)
	require.NoError(t, err)
	require.NoError(t, out.Flush())

	in := wire.NewInputReader(&buf, &opts)
	f, err := in.ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, 3.5, f)
	s, err := in.ReadInt16s(3)
	require.NoError(t, err)
	require.Equal(t, []int16{1, -1, 300}, s)
	fs, err := in.ReadFloat32s(2)
	require.NoError(t, err)
	require.Equal(t, []float32{0.25, 8}, fs)
	v, err := in.ReadVarInt32(false)
	require.NoError(t, err)
	require.EqualValues(t, -7, v)
}
