package commands

import (
	"github.com/chaisql/wire/cmd/wire/dump"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

// NewChunksCommand returns a cli.Command for "wire chunks".
func NewChunksCommand() *cli.Command {
	return &cli.Command{
		Name:      "chunks",
		Usage:     "List the chunks of a chunked stream",
		UsageText: "wire chunks [options] [file]",
		Description: `The chunks command prints one line per logical chunk of a stream written
in chunks, with its size and the number of pieces it was flushed in:

$ wire chunks data.bin
chunk 0: 1 bytes in 1 pieces
chunk 1: 49 bytes in 7 pieces`,
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:  "buffer-size",
				Usage: "size of the read buffer in bytes",
				Value: 4096,
			},
		}, storeFlags()...),
		Action: func(c *cli.Context) (err error) {
			r, closer, err := openSource(c)
			if err != nil {
				return err
			}
			defer func() {
				err = multierr.Append(err, closer())
			}()

			return dump.Chunks(c.App.Writer, r, c.Int("buffer-size"))
		},
	}
}
