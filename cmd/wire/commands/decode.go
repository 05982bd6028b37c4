package commands

import (
	"github.com/chaisql/wire"
	"github.com/chaisql/wire/internal/manifest"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

// NewDecodeCommand returns a cli.Command for "wire decode".
func NewDecodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode a stream using a JSON manifest as schema",
		UsageText: "wire decode [options] -m manifest [file]",
		Description: `The decode command reads the values described by a manifest and prints
them as a manifest.

The kinds, array lengths and options of the manifest drive the reads, its values
are ignored. Chunks marked with "skip": true are jumped over:

$ wire decode -m manifest.json data.bin
$ wire decode -c -m manifest.json --db my.db -s values`,
		Flags: append(append([]cli.Flag{
			&cli.StringFlag{
				Name:     "manifest",
				Aliases:  []string{"m"},
				Usage:    "path of the manifest describing the stream",
				Required: true,
			},
		}, codecFlags()...), storeFlags()...),
		Action: runDecode,
	}
}

func runDecode(c *cli.Context) (err error) {
	logger := newLogger(c)

	data, err := readFile(c, c.String("manifest"))
	if err != nil {
		return err
	}
	schema, err := manifest.Parse(data)
	if err != nil {
		return err
	}

	r, closer, err := openSource(c)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, closer())
	}()

	var entries []manifest.Entry
	var in *wire.Input
	if c.Bool("chunked") {
		cin := wire.NewInputChunked(r, codecOptions(c))
		entries, err = manifest.DecodeChunked(cin, schema)
		in = cin.Input
	} else {
		in = wire.NewInputReader(r, codecOptions(c))
		entries, err = manifest.Decode(in, schema)
	}
	if err != nil {
		return err
	}

	end, err := in.End()
	if err != nil {
		return err
	}
	if !end {
		logger.Warn("trailing bytes after the last value", "offset", in.Total())
	}
	logger.Debug("stream decoded", "entries", len(entries), "bytes", in.Total())

	_, err = c.App.Writer.Write(manifest.Format(entries))
	return err
}
