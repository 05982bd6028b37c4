// Package dump prints the structure of chunked streams and Pebble
// databases.
package dump

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chaisql/wire"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

// Chunks prints one line per logical chunk read from r.
func Chunks(w io.Writer, r io.Reader, bufferSize int) error {
	in := wire.NewInputReader(r, &wire.Options{BufferSize: bufferSize})

	var chunk, pieces int
	var size int64
	for {
		end, err := in.End()
		if err != nil {
			return err
		}
		if end {
			break
		}

		n, err := in.ReadVarInt32(true)
		if err != nil {
			return err
		}
		if n < 0 {
			return errors.Newf("invalid chunk length %d at offset %d", uint32(n), in.Total())
		}
		if n > 0 {
			if err := in.Skip(int64(n)); err != nil {
				return errors.Wrapf(err, "chunk %d", chunk)
			}
			pieces++
			size += int64(n)
			continue
		}

		if _, err := fmt.Fprintf(w, "chunk %d: %d bytes in %d pieces\n", chunk, size, pieces); err != nil {
			return err
		}
		chunk++
		pieces, size = 0, 0
	}

	if pieces > 0 {
		_, err := fmt.Fprintf(w, "chunk %d: %d bytes in %d pieces (unterminated)\n", chunk, size, pieces)
		return err
	}
	return nil
}

// PebbleOptions configures Pebble.
type PebbleOptions struct {
	KeysOnly bool
}

// Pebble prints every key of db, and its value unless KeysOnly is set.
// Keys sharing everything up to their last separator are grouped.
func Pebble(w io.Writer, db *pebble.DB, opt PebbleOptions) error {
	iter := db.NewIter(nil)
	defer iter.Close()

	var group []byte
	for iter.First(); iter.Valid(); iter.Next() {
		k := iter.Key()
		g := k
		if i := bytes.LastIndexByte(k, 0x1F); i >= 0 {
			g = k[:i]
		}
		if group != nil && !bytes.Equal(g, group) {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		group = append(group[:0], g...)

		var err error
		if opt.KeysOnly {
			_, err = fmt.Fprintf(w, "%q\n", k)
		} else {
			_, err = fmt.Fprintf(w, "%q: %x\n", k, iter.Value())
		}
		if err != nil {
			return err
		}
	}

	return iter.Error()
}
