package commands

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/urfave/cli/v2"
)

// runRoot runs when no command matched the arguments.
func runRoot(c *cli.Context) error {
	if !c.Args().Present() {
		return cli.ShowAppHelp(c)
	}

	name := c.Args().First()
	msg := fmt.Sprintf("unknown command %q", name)
	if s := suggestions(c.App.Commands, name); len(s) > 0 {
		msg += fmt.Sprintf(", did you mean %s?", strings.Join(s, " or "))
	}
	return cli.Exit(msg, 2)
}

func shouldSuggest(name, in string) bool {
	// input should be at least half the command size to get a suggestion.
	d := levenshtein.ComputeDistance(name, in)
	return d < (len(name) / 2)
}

func suggestions(cmds []*cli.Command, in string) []string {
	var list []string
	for _, c := range cmds {
		for _, name := range c.Names() {
			if shouldSuggest(name, in) {
				list = append(list, fmt.Sprintf("%q", c.Name))
				break
			}
		}
	}
	return list
}
