package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissing(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.SetPath(path)
	cfg.Provider = "openai"
	cfg.APIKey = "sk-test-1234567890"
	cfg.Storage.Backend = "sqlite"
	require.NoError(t, cfg.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "openai", loaded.Provider)
	assert.Equal(t, "sk-test-1234567890", loaded.APIKey)
	assert.Equal(t, "sqlite", loaded.Storage.Backend)

	got, err := loaded.Path()
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: ollama\n"), 0600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.Provider)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.Equal(t, "file", cfg.Storage.Backend)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: [unclosed"), 0600))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestStoragePath(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.SetPath(filepath.Join(dir, "config.yaml"))

	p, err := cfg.StoragePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data"), p)

	cfg.Storage.Backend = "sqlite"
	p, err = cfg.StoragePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "promptmaster.db"), p)

	cfg.Storage.Path = "/tmp/explicit.db"
	p, err = cfg.StoragePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/explicit.db", p)

	lp, err := cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "promptmaster.log"), lp)
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("API_KEY", "from-env")

	cfg := DefaultConfig()
	assert.Equal(t, "from-env", cfg.ResolveAPIKey())
	assert.False(t, cfg.NeedsSetup())

	cfg.APIKey = "from-config"
	assert.Equal(t, "from-config", cfg.ResolveAPIKey())
}

func TestNeedsSetup(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg := DefaultConfig()
	cfg.Provider = "openai"
	assert.True(t, cfg.NeedsSetup())

	cfg.Provider = "ollama"
	assert.False(t, cfg.NeedsSetup())

	cfg.Provider = "custom"
	assert.True(t, cfg.NeedsSetup())
	cfg.BaseURL = "http://localhost:8080/v1"
	assert.False(t, cfg.NeedsSetup())

	cfg.Provider = "unknown"
	assert.True(t, cfg.NeedsSetup())
}

func TestMaskedAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	cfg := DefaultConfig()
	cfg.Provider = "openai"
	assert.Equal(t, "Not set", cfg.MaskedAPIKey())

	cfg.APIKey = "short"
	assert.Equal(t, "****", cfg.MaskedAPIKey())

	cfg.APIKey = "sk-abcdefghijkl"
	assert.Equal(t, "sk-a****ijkl", cfg.MaskedAPIKey())
}

func TestGetProvider(t *testing.T) {
	p := GetProvider("groq")
	require.NotNil(t, p)
	assert.Equal(t, "https://api.groq.com/openai/v1", p.BaseURL)
	assert.Nil(t, GetProvider("nope"))
}
