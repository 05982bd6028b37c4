package commands

import (
	"fmt"
	"io"

	"github.com/chaisql/wire/cmd/wire/dump"
	"github.com/chaisql/wire/internal/kv"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

// NewPebbleCommand returns a cli.Command for "wire pebble".
func NewPebbleCommand() *cli.Command {
	return &cli.Command{
		Name:      "pebble",
		Usage:     "Manage the streams of a Pebble database",
		UsageText: "wire pebble --db path command [arguments]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "db",
				Usage:    "path of the Pebble database",
				Required: true,
			},
		},
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the streams with their size",
				Action: withEngine(func(c *cli.Context, ng *kv.Engine) error {
					list, err := ng.Streams()
					if err != nil {
						return err
					}
					for _, si := range list {
						_, err = fmt.Fprintf(c.App.Writer, "%s\t%d bytes\t%d segments\n", si.Name, si.Size, si.Segments)
						if err != nil {
							return err
						}
					}
					return nil
				}),
			},
			{
				Name:      "put",
				Usage:     "Store a file or the standard input as a stream",
				UsageText: "wire pebble --db path put stream [file]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "segment-size",
						Usage: "maximum size of a segment in bytes",
						Value: 64 * 1024,
					},
				},
				Action: withEngine(func(c *cli.Context, ng *kv.Engine) error {
					data, err := readFile(c, c.Args().Get(1))
					if err != nil {
						return err
					}

					w, err := ng.NewWriter(c.Args().First())
					if err != nil {
						return err
					}
					size := max(c.Int("segment-size"), 1)
					for len(data) > 0 {
						n := min(size, len(data))
						if _, err := w.Write(data[:n]); err != nil {
							return multierr.Append(err, w.Discard())
						}
						data = data[n:]
					}
					return w.Close()
				}),
			},
			{
				Name:      "get",
				Usage:     "Write a stream to the standard output",
				UsageText: "wire pebble --db path get stream",
				Action: withEngine(func(c *cli.Context, ng *kv.Engine) error {
					r, err := ng.NewReader(c.Args().First())
					if err != nil {
						return err
					}
					_, err = io.Copy(c.App.Writer, r)
					return multierr.Append(err, r.Close())
				}),
			},
			{
				Name:      "delete",
				Usage:     "Delete a stream",
				UsageText: "wire pebble --db path delete stream",
				Action: withEngine(func(c *cli.Context, ng *kv.Engine) error {
					return ng.DeleteStream(c.Args().First())
				}),
			},
			{
				Name:  "dump",
				Usage: "Output the keys and values of the database",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "keys-only",
						Aliases: []string{"k"},
						Usage:   "Only output the keys.",
					},
				},
				Action: withEngine(func(c *cli.Context, ng *kv.Engine) error {
					return dump.Pebble(c.App.Writer, ng.DB, dump.PebbleOptions{
						KeysOnly: c.Bool("keys-only"),
					})
				}),
			},
		},
	}
}

func withEngine(fn func(c *cli.Context, ng *kv.Engine) error) cli.ActionFunc {
	return func(c *cli.Context) (err error) {
		ng, err := openEngine(c)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, ng.Close())
		}()

		return fn(c, ng)
	}
}
