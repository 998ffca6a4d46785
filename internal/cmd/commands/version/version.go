// Package version implements the "guardrail version" command.
package version

import (
	"fmt"

	"github.com/guardrail-dev/guardrail/internal/cmd/base"
	appversion "github.com/guardrail-dev/guardrail/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the guardrail version"
}

func (c *Command) Help() string {
	return `Usage: guardrail version

  Prints the guardrail version.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(fmt.Sprintf("guardrail %s", appversion.Version))
	return 0
}
