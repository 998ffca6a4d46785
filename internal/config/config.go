// Package config holds the process-wide configuration for the guardrail
// CLI: defaults, an optional HCL file, then environment overrides, in that
// order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Environment variables recognized by Load. API_KEY has no default and is
// required for commands that talk to the API.
const (
	EnvBaseURL    = "API_BASE_URL"
	EnvAPIKey     = "API_KEY"
	EnvGuardRoot  = "GUARD_ROOT"
	EnvTimeout    = "API_TIMEOUT"
	EnvMaxRetries = "API_MAX_RETRIES"
)

// Config is the process configuration. Fields map 1:1 to HCL attributes in
// the optional config file.
type Config struct {
	// BaseURL is the API origin.
	BaseURL string `hcl:"base_url,optional"`

	// APIKey is the bearer token for API requests. Sourced from the
	// API_KEY environment variable in typical use; never defaulted.
	APIKey string `hcl:"api_key,optional"`

	// GuardRoot is the directory subtree guarded file reads are confined
	// to.
	GuardRoot string `hcl:"guard_root,optional"`

	// TimeoutSeconds bounds each API request.
	TimeoutSeconds int `hcl:"timeout_seconds,optional"`

	// MaxRetries is the API retry budget.
	MaxRetries int `hcl:"max_retries,optional"`

	// Debug raises the log level.
	Debug bool `hcl:"debug,optional"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BaseURL:        "https://api.example.com",
		GuardRoot:      "/allowed/directory",
		TimeoutSeconds: 30,
		MaxRetries:     3,
	}
}

// Load builds the configuration: defaults, then the HCL file at path when
// path is non-empty, then environment overrides. Load does not validate;
// call Validate once the caller knows which fields it needs.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := hclsimple.DecodeFile(path, nil, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvGuardRoot); v != "" {
		c.GuardRoot = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", EnvTimeout, v)
		}
		c.TimeoutSeconds = n
	}
	if v := os.Getenv(EnvMaxRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", EnvMaxRetries, v)
		}
		c.MaxRetries = n
	}
	return nil
}

// Validate checks every field and aggregates the failures. requireAPIKey
// should be true for commands that talk to the API; the key is a
// user-visible fatal condition there, but irrelevant to local-only commands.
func (c *Config) Validate(requireAPIKey bool) error {
	var result *multierror.Error

	if requireAPIKey && c.APIKey == "" {
		result = multierror.Append(result, fmt.Errorf("%s environment variable not set", EnvAPIKey))
	}
	if c.BaseURL == "" {
		result = multierror.Append(result, fmt.Errorf("base_url is required"))
	}
	if c.GuardRoot == "" {
		result = multierror.Append(result, fmt.Errorf("guard_root is required"))
	}
	if c.TimeoutSeconds <= 0 {
		result = multierror.Append(result, fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds))
	}
	if c.MaxRetries < 0 {
		result = multierror.Append(result, fmt.Errorf("max_retries cannot be negative, got %d", c.MaxRetries))
	}

	return result.ErrorOrNil()
}

// Timeout returns TimeoutSeconds as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
