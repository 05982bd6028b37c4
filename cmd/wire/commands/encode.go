package commands

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"

	"github.com/chaisql/wire"
	"github.com/chaisql/wire/internal/manifest"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

// NewEncodeCommand returns a cli.Command for "wire encode".
func NewEncodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "Encode the values of a JSON manifest",
		UsageText: "wire encode [options] [manifest]",
		Description: `The encode command writes the values described by a JSON manifest.

The manifest is read from the file given as argument or from the standard input:

$ echo '[{"type": "varint32", "value": 300}, {"type": "string", "value": "hi"}]' | wire encode --hex
00000000  d8 04 68 e9                                       |..h.|

Chunked manifests hold chunks only:

$ wire encode -c -o data.bin manifest.json

The stream can also be stored in a Pebble database:

$ wire encode --db my.db -s values manifest.json`,
		Flags: append(append([]cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "name of the file to write to. Defaults to STDOUT.",
			},
			&cli.BoolFlag{
				Name:  "hex",
				Usage: "write a hex dump instead of raw bytes",
			},
		}, codecFlags()...), storeFlags()...),
		Action: runEncode,
	}
}

func runEncode(c *cli.Context) (err error) {
	logger := newLogger(c)

	data, err := readFile(c, c.Args().First())
	if err != nil {
		return err
	}
	entries, err := manifest.Parse(data)
	if err != nil {
		return err
	}

	var w io.Writer
	var closer func() error
	switch {
	case c.String("db") != "":
		ng, oerr := openEngine(c)
		if oerr != nil {
			return oerr
		}
		defer func() {
			err = multierr.Append(err, ng.Close())
		}()

		sw, werr := ng.NewWriter(c.String("stream"))
		if werr != nil {
			return werr
		}
		w, closer = sw, sw.Close
	case c.String("output") != "":
		f, ferr := os.Create(c.String("output"))
		if ferr != nil {
			return ferr
		}
		w, closer = f, f.Close
	default:
		w, closer = c.App.Writer, func() error { return nil }
	}

	var dump bytes.Buffer
	dst := w
	if c.Bool("hex") {
		dst = &dump
	}

	opts := codecOptions(c)
	var total int64
	if c.Bool("chunked") {
		out := wire.NewOutputChunked(dst, opts)
		err = manifest.EncodeChunked(out, entries)
		total = out.Total()
	} else {
		out := wire.NewOutputWriter(dst, opts)
		err = manifest.Encode(out, entries)
		if err == nil {
			err = out.Flush()
		}
		total = out.Total()
	}
	if err == nil && c.Bool("hex") {
		_, err = io.WriteString(w, hex.Dump(dump.Bytes()))
	}
	if err != nil {
		if sw, ok := w.(interface{ Discard() error }); ok {
			return multierr.Append(err, sw.Discard())
		}
		return multierr.Append(err, closer())
	}

	logger.Debug("manifest encoded", "entries", len(entries), "bytes", total)
	return closer()
}
