package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := Default()
	cfg.Token = "test-token"
	return cfg
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "anonymous", cfg.FeedType)
	assert.Equal(t, "https://feeds.spur.us/v2/", cfg.BaseURL)
	assert.Equal(t, 100000, cfg.BatchSize)
	assert.Equal(t, 4, cfg.Workers)
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	cfg.FeedType = "anonymous-residential"
	require.NoError(t, cfg.Validate())
}

func TestValidate_MissingToken(t *testing.T) {
	cfg := validConfig()
	cfg.Token = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_TOKEN")
}

func TestValidate_UnknownFeedType(t *testing.T) {
	cfg := validConfig()
	cfg.FeedType = "residential"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown feed type")
}

func TestValidate_BadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad base url", func(c *Config) { c.BaseURL = "not a url" }, "invalid base URL"},
		{"negative batch size", func(c *Config) { c.BatchSize = -1 }, "batch size"},
		{"negative workers", func(c *Config) { c.Workers = -2 }, "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"feed_type": "anonymous-residential",
		"batch_size": 5000,
		"workers": 8
	}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "anonymous-residential", cfg.FeedType)
	assert.Equal(t, 5000, cfg.BatchSize)
	assert.Equal(t, 8, cfg.Workers)
	assert.Empty(t, cfg.Token, "token must never come from the config file")
}

func TestLoad_TokenFieldIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token": "sneaky"}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Token)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoad_EmptyPath(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{FeedType: "anonymous-residential", Workers: 2}
	merged := partial.MergeWithDefaults(Default())

	assert.Equal(t, "anonymous-residential", merged.FeedType)
	assert.Equal(t, 2, merged.Workers)
	assert.Equal(t, "https://feeds.spur.us/v2/", merged.BaseURL)
	assert.Equal(t, 100000, merged.BatchSize)
}

func TestTokenFromEnv(t *testing.T) {
	t.Setenv(EnvToken, "from-env")
	assert.Equal(t, "from-env", TokenFromEnv())

	t.Setenv(EnvToken, "")
	assert.Empty(t, TokenFromEnv())
}
