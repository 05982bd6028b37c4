package testutil

import (
	"os"
	"testing"

	"github.com/chaisql/wire/internal/testutil/assert"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

func TempDir(t testing.TB) string {
	dir, err := os.MkdirTemp("", "wire")
	assert.NoError(t, err)

	t.Cleanup(func() {
		os.RemoveAll(dir)
	})
	return dir
}

// NewMemPebble opens a Pebble database on an in-memory filesystem, closed
// when the test ends.
func NewMemPebble(t testing.TB) *pebble.DB {
	t.Helper()

	pdb, err := pebble.Open("", &pebble.Options{FS: vfs.NewStrictMem()})
	assert.NoError(t, err)

	t.Cleanup(func() {
		pdb.Close()
	})
	return pdb
}
