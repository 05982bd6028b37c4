package wire_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/chaisql/wire"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestPools(t *testing.T) {
	outputs := wire.NewOutputPool(&wire.Options{BufferSize: 32})
	inputs := wire.NewInputPool(&wire.Options{BufferSize: 32})

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		i := i
		g.Go(func() error {
			for j := 0; j < 50; j++ {
				var buf bytes.Buffer
				out := outputs.Get(&buf)
				if out.Total() != 0 {
					return fmt.Errorf("pooled output not reset: %d", out.Total())
				}
				want := fmt.Sprintf("worker %d message %d", i, j)
				if err := out.WriteString(want); err != nil {
					return err
				}
				if _, err := out.WriteVarInt64(int64(i*j), false); err != nil {
					return err
				}
				if err := out.Flush(); err != nil {
					return err
				}
				outputs.Put(out)

				in := inputs.Get(&buf)
				got, err := in.ReadString()
				if err != nil {
					return err
				}
				v, err := in.ReadVarInt64(false)
				if err != nil {
					return err
				}
				inputs.Put(in)

				if got != want || v != int64(i*j) {
					return fmt.Errorf("got %q %d, want %q %d", got, v, want, i*j)
				}
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
}

func TestPoolSkipsDirect(t *testing.T) {
	out, err := wire.NewDirectOutput(nil, &wire.Options{BufferSize: 64})
	require.NoError(t, err)
	defer out.Close()

	pool := wire.NewOutputPool(nil)
	pool.Put(out)
	got := pool.Get(nil)
	require.False(t, got.Direct())
}
