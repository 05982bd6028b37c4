package testutil

import (
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/stretchr/testify/require"
)

// DumpPebble logs every key and value of pdb.
func DumpPebble(t testing.TB, pdb *pebble.DB) {
	t.Helper()
	it := pdb.NewIter(nil)

	for it.First(); it.Valid(); it.Next() {
		t.Logf("%x: %x", it.Key(), it.Value())
	}

	err := it.Close()
	require.NoError(t, err)
}
