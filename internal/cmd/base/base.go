// Package base carries the state shared by all CLI commands: the logger,
// the UI, and the common configuration flags.
package base

import (
	"flag"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/guardrail-dev/guardrail/internal/config"
)

// Command is embedded by every CLI command.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	flagConfig string
	flagDebug  bool
}

// FlagSet returns a flag set pre-populated with the flags every command
// accepts. Parse errors are reported by the caller, not by the flag package.
func (c *Command) FlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&c.flagConfig, "config", "", "Path to an HCL configuration file")
	fs.BoolVar(&c.flagDebug, "debug", false, "Enable debug logging")
	return fs
}

// Config loads the process configuration honoring the -config and -debug
// flags. Must be called after the command's FlagSet has been parsed.
func (c *Command) Config() (*config.Config, error) {
	cfg, err := config.Load(c.flagConfig)
	if err != nil {
		return nil, err
	}
	if cfg.Debug || c.flagDebug {
		c.Log.SetLevel(hclog.Debug)
	}
	return cfg, nil
}
