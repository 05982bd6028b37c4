package commands

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/chaisql/wire/internal/encoding"
	"github.com/urfave/cli/v2"
)

// NewVarIntCommand returns a cli.Command for "wire varint".
func NewVarIntCommand() *cli.Command {
	return &cli.Command{
		Name:      "varint",
		Usage:     "Show the variable-length encoding of integers",
		UsageText: "wire varint [options] integer...",
		Description: `The varint command prints the size and bytes of each integer:

$ wire varint 1 -1 300
1	1	02
-1	1	01
300	2	d804

--positive uses the unsigned encoding, --long the 64-bit one and --flag
the encoding with an extra flag bit.

With --decode, the arguments are hex strings holding one or more varints,
which are decoded back. Flagged varints get a fourth column with the flag:

$ wire varint --decode d80402
300	2	d804
1	1	02`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "positive",
				Usage: "optimize for positive values instead of zig-zag encoding",
			},
			&cli.BoolFlag{
				Name:  "long",
				Usage: "encode as 64-bit integers",
			},
			&cli.BoolFlag{
				Name:  "flag",
				Usage: "encode as a varint with the flag bit set",
			},
			&cli.BoolFlag{
				Name:  "decode",
				Usage: "decode hex encoded varints",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() == 0 {
				return cli.Exit("at least one argument is required", 2)
			}
			if c.Bool("long") && c.Bool("flag") {
				return cli.Exit("--long and --flag cannot be used together", 2)
			}

			for _, arg := range c.Args().Slice() {
				var err error
				if c.Bool("decode") {
					err = decodeVarInts(c, arg)
				} else {
					err = encodeVarInt(c, arg)
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func encodeVarInt(c *cli.Context, arg string) error {
	bitSize := 32
	if c.Bool("long") {
		bitSize = 64
	}
	v, err := strconv.ParseInt(arg, 10, bitSize)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid integer %q", arg), 2)
	}

	positive := c.Bool("positive")
	var b []byte
	switch {
	case c.Bool("long"):
		b = encoding.EncodeVarInt64(nil, v, positive)
	case c.Bool("flag"):
		u := uint32(v)
		if !positive {
			u = encoding.ZigZag32(int32(v))
		}
		b = encoding.EncodeUvarint32Flag(nil, true, u)
	default:
		b = encoding.EncodeVarInt32(nil, int32(v), positive)
	}

	_, err = fmt.Fprintf(c.App.Writer, "%d\t%d\t%s\n", v, len(b), hex.EncodeToString(b))
	return err
}

func decodeVarInts(c *cli.Context, arg string) error {
	b, err := hex.DecodeString(arg)
	if err != nil || len(b) == 0 {
		return cli.Exit(fmt.Sprintf("invalid hex string %q", arg), 2)
	}

	positive := c.Bool("positive")
	for len(b) > 0 {
		var (
			v    int64
			n    int
			flag bool
		)
		switch {
		case c.Bool("long"):
			v, n = encoding.DecodeVarInt64(b, positive)
		case c.Bool("flag"):
			var u uint32
			flag, u, n = encoding.DecodeUvarint32Flag(b)
			v = int64(int32(u))
			if !positive {
				v = int64(encoding.UnZigZag32(u))
			}
		default:
			var v32 int32
			v32, n = encoding.DecodeVarInt32(b, positive)
			v = int64(v32)
		}
		if n == 0 {
			return cli.Exit(fmt.Sprintf("truncated varint %q", hex.EncodeToString(b)), 1)
		}

		line := fmt.Sprintf("%d\t%d\t%s", v, n, hex.EncodeToString(b[:n]))
		if c.Bool("flag") {
			line += "\t" + strconv.FormatBool(flag)
		}
		if _, err := fmt.Fprintln(c.App.Writer, line); err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}
