package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/guardrail-dev/guardrail/internal/cmd/base"
	"github.com/guardrail-dev/guardrail/internal/cmd/commands/check"
	"github.com/guardrail-dev/guardrail/internal/cmd/commands/readfile"
	"github.com/guardrail-dev/guardrail/internal/cmd/commands/userinfo"
	versioncmd "github.com/guardrail-dev/guardrail/internal/cmd/commands/version"
)

// Commands is the mapping of all available CLI commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	newBase := func() *base.Command {
		return &base.Command{Log: log, UI: ui}
	}

	Commands = map[string]cli.CommandFactory{
		"check": func() (cli.Command, error) {
			return &check.Command{Command: newBase()}, nil
		},
		"readfile": func() (cli.Command, error) {
			return &readfile.Command{Command: newBase()}, nil
		},
		"userinfo": func() (cli.Command, error) {
			return &userinfo.Command{Command: newBase()}, nil
		},
		"version": func() (cli.Command, error) {
			return &versioncmd.Command{Command: newBase()}, nil
		},
	}
}
