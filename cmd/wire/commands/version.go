package commands

import (
	"fmt"
	"runtime/debug"

	"github.com/urfave/cli/v2"
)

// NewVersionCommand returns a cli.Command for "wire version".
func NewVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Shows the wire library and CLI versions",
		Action: func(c *cli.Context) error {
			var cliVersion, libVersion string
			info, ok := debug.ReadBuildInfo()

			if !ok {
				_, err := fmt.Fprintln(c.App.Writer, `version not available in GOPATH mode; use "go get" with Go modules enabled`)
				return err
			}

			cliVersion = info.Main.Version
			for _, mod := range info.Deps {
				if mod.Path != "github.com/chaisql/wire" {
					continue
				}
				// if a replace directive is set, the library is in development mode
				if mod.Replace != nil {
					libVersion = "(devel)"
					break
				}
				libVersion = mod.Version
				break
			}
			_, err := fmt.Fprintf(c.App.Writer, "wire %v\nwire CLI %v\n", libVersion, cliVersion)
			return err
		},
	}
}
