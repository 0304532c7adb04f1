package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFLUENCE_URL",
		"CONFLUENCE_USERNAME",
		"CONFLUENCE_API_TOKEN",
		"CONFLUENCE_TOKEN",
		"CONFLUENCE_SPACE_KEY",
		"CONFLUENCE_PARENT_PAGE",
		"LISTEN_ADDR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFLUENCE_URL", "https://wiki.example.com/confluence")
	t.Setenv("CONFLUENCE_USERNAME", "svc@example.com")
	t.Setenv("CONFLUENCE_API_TOKEN", "secret")
	t.Setenv("CONFLUENCE_SPACE_KEY", "DOCS")
	t.Setenv("CONFLUENCE_PARENT_PAGE", "100")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://wiki.example.com/confluence/", cfg.BaseURL, "base URL gets a trailing slash")
	assert.Equal(t, "svc@example.com", cfg.Username)
	assert.Equal(t, "secret", cfg.APIToken)
	assert.Equal(t, "DOCS", cfg.SpaceKey)
	assert.Equal(t, "100", cfg.ScopeRoot)
	assert.Equal(t, defaultAddr, cfg.Addr)
}

func TestLoadLegacyTokenFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFLUENCE_URL", "https://wiki.example.com/")
	t.Setenv("CONFLUENCE_USERNAME", "svc@example.com")
	t.Setenv("CONFLUENCE_TOKEN", "legacy-secret")
	t.Setenv("CONFLUENCE_SPACE_KEY", "DOCS")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "legacy-secret", cfg.APIToken)
}

func TestLoadAPITokenWinsOverLegacyToken(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFLUENCE_URL", "https://wiki.example.com/")
	t.Setenv("CONFLUENCE_USERNAME", "svc@example.com")
	t.Setenv("CONFLUENCE_TOKEN", "legacy-secret")
	t.Setenv("CONFLUENCE_API_TOKEN", "secret")
	t.Setenv("CONFLUENCE_SPACE_KEY", "DOCS")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.APIToken)
}

func TestLoadMissingRequiredValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFLUENCE_URL", "https://wiki.example.com/")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadFromFileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
url: https://wiki.example.com
username: file-user@example.com
api_token: file-secret
space_key: DOCS
scope_root: "100"
addr: 0.0.0.0:9000
`), 0o600))
	t.Setenv("CONFLUENCE_USERNAME", "env-user@example.com")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-user@example.com", cfg.Username, "environment overrides the file")
	assert.Equal(t, "file-secret", cfg.APIToken)
	assert.Equal(t, "100", cfg.ScopeRoot)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
