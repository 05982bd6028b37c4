package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/chaisql/wire"
	"github.com/chaisql/wire/internal/kv"
	"github.com/urfave/cli/v2"
)

// NewApp creates the wire CLI app.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "wire"
	app.Usage = "Encode, decode and inspect wire streams"
	app.EnableBashCompletion = true
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "log debug messages to stderr",
		},
	}

	app.Commands = []*cli.Command{
		NewEncodeCommand(),
		NewDecodeCommand(),
		NewChunksCommand(),
		NewVarIntCommand(),
		NewPebbleCommand(),
		NewVersionCommand(),
	}
	app.Action = runRoot

	return app
}

func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelWarn
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}

	w := c.App.ErrWriter
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// codecFlags are the flags shared by the commands reading or writing
// streams.
func codecFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "buffer-size",
			Usage: "size of the codec buffer in bytes",
			Value: wire.DefaultBufferSize,
		},
		&cli.BoolFlag{
			Name:  "native",
			Usage: "use the byte order of this machine for fixed-width values",
		},
		&cli.BoolFlag{
			Name:    "chunked",
			Aliases: []string{"c"},
			Usage:   "the stream is made of chunks",
		},
	}
}

// storeFlags select a stream of a Pebble database instead of a file.
func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "db",
			Usage: "path of a Pebble database holding the stream",
		},
		&cli.StringFlag{
			Name:    "stream",
			Aliases: []string{"s"},
			Usage:   "name of the stream, requires --db",
		},
	}
}

func codecOptions(c *cli.Context) *wire.Options {
	opts := wire.Options{
		BufferSize: c.Int("buffer-size"),
	}
	if c.Bool("native") {
		opts.Codec = wire.Native
	}
	return &opts
}

func openEngine(c *cli.Context) (*kv.Engine, error) {
	path := c.String("db")
	if path == "" {
		return nil, cli.Exit("--db is required", 2)
	}
	return kv.Open(path, &kv.Options{Logger: newLogger(c)})
}

// openSource returns the stream to read: a Pebble stream if --db is set,
// the file named by the first argument otherwise, or the standard input.
func openSource(c *cli.Context) (io.Reader, func() error, error) {
	if c.String("db") != "" {
		ng, err := openEngine(c)
		if err != nil {
			return nil, nil, err
		}
		r, err := ng.NewReader(c.String("stream"))
		if err != nil {
			_ = ng.Close()
			return nil, nil, err
		}
		return r, func() error {
			_ = r.Close()
			return ng.Close()
		}, nil
	}

	path := c.Args().First()
	if path == "" || path == "-" {
		return c.App.Reader, func() error { return nil }, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// readFile reads the named file, or the standard input if path is empty.
func readFile(c *cli.Context, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(c.App.Reader)
	}
	return os.ReadFile(path)
}
