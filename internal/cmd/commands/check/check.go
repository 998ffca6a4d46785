// Package check implements the "guardrail check" command.
package check

import (
	"fmt"

	"github.com/guardrail-dev/guardrail/internal/cmd/base"
	"github.com/guardrail-dev/guardrail/pkg/sanitize"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Screen a string for denylisted input patterns"
}

func (c *Command) Help() string {
	return `Usage: guardrail check [options] <string>

  Screens <string> against the denylist of known dangerous substrings and
  exits non-zero when a pattern matches. The check is advisory; it is not a
  security guarantee.

Options:

  -debug  Enable debug logging.`
}

func (c *Command) Run(args []string) int {
	fs := c.FlagSet("check")
	if err := fs.Parse(args); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if len(fs.Args()) != 1 {
		c.UI.Error("Exactly one string argument is required.")
		c.UI.Error(c.Help())
		return 1
	}

	res := sanitize.NewChecker(c.Log).Check(fs.Args()[0])
	if !res.OK {
		if res.Pattern != "" {
			c.UI.Error(fmt.Sprintf("Input rejected: matched pattern %q.", res.Pattern))
		} else {
			c.UI.Error("Input rejected: empty input.")
		}
		return 1
	}

	c.UI.Output("Input OK.")
	return 0
}
