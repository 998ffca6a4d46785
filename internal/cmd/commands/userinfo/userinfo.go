// Package userinfo implements the "guardrail userinfo" command.
package userinfo

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/guardrail-dev/guardrail/internal/cmd/base"
	"github.com/guardrail-dev/guardrail/pkg/client"
	"github.com/guardrail-dev/guardrail/pkg/sanitize"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Fetch a user record from the configured API"
}

func (c *Command) Help() string {
	return `Usage: guardrail userinfo [options] <user-id>

  Fetches the user record for <user-id> from the configured API and prints
  it as indented JSON. Requires the API_KEY environment variable (or an
  api_key attribute in the config file).

Options:

  -config=<path>  Path to an HCL configuration file.
  -debug          Enable debug logging.`
}

func (c *Command) Run(args []string) int {
	fs := c.FlagSet("userinfo")
	if err := fs.Parse(args); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if len(fs.Args()) != 1 {
		c.UI.Error("Exactly one user ID argument is required.")
		c.UI.Error(c.Help())
		return 1
	}
	userID := fs.Args()[0]

	cfg, err := c.Config()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if err := cfg.Validate(true); err != nil {
		c.Log.Error("configuration invalid", "error", err)
		c.UI.Error(err.Error())
		return 1
	}

	// Screen the caller-supplied ID before it reaches the request path.
	if res := sanitize.NewChecker(c.Log).Check(userID); !res.OK {
		c.UI.Error("User ID rejected by input screening.")
		return 1
	}

	apiCfg, err := client.NewConfig(cfg.APIKey,
		client.WithBaseURL(cfg.BaseURL),
		client.WithTimeout(cfg.Timeout()),
		client.WithMaxRetries(cfg.MaxRetries),
	)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	api, err := client.New(apiCfg, client.WithLogger(c.Log))
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	raw, err := api.GetUserInfo(context.Background(), userID)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	c.UI.Output(buf.String())

	return 0
}
