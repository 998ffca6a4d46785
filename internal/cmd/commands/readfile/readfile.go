// Package readfile implements the "guardrail readfile" command.
package readfile

import (
	"github.com/guardrail-dev/guardrail/internal/cmd/base"
	"github.com/guardrail-dev/guardrail/pkg/pathguard"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Read a file confined to the configured guard root"
}

func (c *Command) Help() string {
	return `Usage: guardrail readfile [options] <path>

  Reads <path> as UTF-8 text and prints it, but only when the resolved path
  lies inside the configured guard root (guard_root / GUARD_ROOT). Any path
  outside the root, traversal attempt, or unreadable file is rejected.

Options:

  -config=<path>  Path to an HCL configuration file.
  -debug          Enable debug logging.`
}

func (c *Command) Run(args []string) int {
	fs := c.FlagSet("readfile")
	if err := fs.Parse(args); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if len(fs.Args()) != 1 {
		c.UI.Error("Exactly one path argument is required.")
		c.UI.Error(c.Help())
		return 1
	}
	path := fs.Args()[0]

	cfg, err := c.Config()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if err := cfg.Validate(false); err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	guard, err := pathguard.New(cfg.GuardRoot, pathguard.WithLogger(c.Log))
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	content, err := guard.SafeRead(path)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	c.UI.Output(content)

	return 0
}
