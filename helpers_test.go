package wire_test

import (
	"bytes"
	"testing"
	"testing/iotest"

	"github.com/chaisql/wire"
	"github.com/chaisql/wire/internal/testutil"
	"github.com/stretchr/testify/require"
)

type streamCase struct {
	name      string
	newOutput func(w *bytes.Buffer) *wire.Output
	newInput  func(b []byte) *wire.Input
}

// streamCases combine in-memory, flushing and growing outputs with inputs
// reading the whole data at once or a few bytes at a time.
var streamCases = []streamCase{
	{
		name:      "memory",
		newOutput: func(*bytes.Buffer) *wire.Output { return wire.NewOutput(&wire.Options{MaxBufferSize: wire.Unlimited}) },
		newInput:  func(b []byte) *wire.Input { return wire.NewInput(b, nil) },
	},
	{
		name:      "growing",
		newOutput: func(*bytes.Buffer) *wire.Output { return wire.NewOutputBuffer(nil, wire.Unlimited, nil) },
		newInput:  func(b []byte) *wire.Input { return wire.NewInputReader(bytes.NewReader(b), nil) },
	},
	{
		name: "small buffers",
		newOutput: func(w *bytes.Buffer) *wire.Output {
			return wire.NewOutputWriter(w, &wire.Options{BufferSize: 16})
		},
		newInput: func(b []byte) *wire.Input {
			return wire.NewInputReader(bytes.NewReader(b), &wire.Options{BufferSize: 16})
		},
	},
	{
		name: "one byte reads",
		newOutput: func(w *bytes.Buffer) *wire.Output {
			return wire.NewOutputWriter(w, &wire.Options{BufferSize: 9})
		},
		newInput: func(b []byte) *wire.Input {
			return wire.NewInputReader(iotest.OneByteReader(bytes.NewReader(b)), &wire.Options{BufferSize: 9})
		},
	},
	{
		name: "chunky reads",
		newOutput: func(w *bytes.Buffer) *wire.Output {
			return wire.NewOutputWriter(w, &wire.Options{BufferSize: 64})
		},
		newInput: func(b []byte) *wire.Input {
			return wire.NewInputReader(testutil.ChunkyReader(bytes.NewReader(b), 3), &wire.Options{BufferSize: 32})
		},
	},
}

// roundTrip encodes with write and decodes with read over every stream
// case, and checks that all of them produce the same bytes.
func roundTrip(t *testing.T, write func(t *testing.T, out *wire.Output), read func(t *testing.T, in *wire.Input)) {
	t.Helper()

	var want []byte
	for i, c := range streamCases {
		t.Run(c.name, func(t *testing.T) {
			var buf bytes.Buffer
			out := c.newOutput(&buf)
			write(t, out)
			require.NoError(t, out.Flush())

			data := buf.Bytes()
			if out.Writer() == nil {
				data = out.ToBytes()
			}
			if i == 0 {
				want = data
			} else {
				require.Equal(t, want, data)
			}

			in := c.newInput(data)
			read(t, in)

			end, err := in.End()
			require.NoError(t, err)
			require.True(t, end)
		})
	}
}
