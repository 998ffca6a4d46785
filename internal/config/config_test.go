package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{EnvBaseURL, EnvAPIKey, EnvGuardRoot, EnvTimeout, EnvMaxRetries} {
		t.Setenv(k, "")
	}

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, "/allowed/directory", cfg.GuardRoot)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guardrail.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
base_url        = "https://api.internal.example"
guard_root      = "/srv/data"
timeout_seconds = 5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.internal.example", cfg.BaseURL)
	assert.Equal(t, "/srv/data", cfg.GuardRoot)
	assert.Equal(t, 5, cfg.TimeoutSeconds)
	// Unset attributes keep their defaults.
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestLoadFileInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte("base_url = "), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guardrail.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`base_url = "https://from-file.example"`), 0o644))

	t.Setenv(EnvBaseURL, "https://from-env.example")
	t.Setenv(EnvAPIKey, "sekrit")
	t.Setenv(EnvTimeout, "12")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://from-env.example", cfg.BaseURL)
	assert.Equal(t, "sekrit", cfg.APIKey)
	assert.Equal(t, 12, cfg.TimeoutSeconds)
	assert.Equal(t, 12*time.Second, cfg.Timeout())
}

func TestEnvBadInteger(t *testing.T) {
	t.Setenv(EnvMaxRetries, "lots")

	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("defaults valid without api key", func(t *testing.T) {
		assert.NoError(t, Default().Validate(false))
	})

	t.Run("missing api key fatal when required", func(t *testing.T) {
		err := Default().Validate(true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvAPIKey)
	})

	t.Run("aggregates all failures", func(t *testing.T) {
		cfg := &Config{TimeoutSeconds: 0, MaxRetries: -1}
		err := cfg.Validate(true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "base_url")
		assert.Contains(t, err.Error(), "guard_root")
		assert.Contains(t, err.Error(), "timeout_seconds")
		assert.Contains(t, err.Error(), "max_retries")
	})
}
