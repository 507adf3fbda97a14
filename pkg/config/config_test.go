package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 8, cfg.Engine.MaxSuggestions)
	assert.Equal(t, 0.1, cfg.Engine.MinConfidence)
	assert.Equal(t, 2, cfg.Engine.DedupDistance)
	assert.Equal(t, "default", cfg.Store.Scope)
	assert.Equal(t, 180, cfg.Store.RetentionDays)
	assert.False(t, cfg.Store.Disabled)
	assert.Equal(t, 32, cfg.Server.MaxLimit)
	assert.Equal(t, 240, cfg.Server.MaxUtteranceLen)
	assert.Equal(t, 100, cfg.Server.ReloadInterval)
}

func TestInitConfigCreatesFileWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	// second init reads the file it just wrote
	again, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.Engine.MaxSuggestions = 12
	cfg.Engine.MinConfidence = 0.25
	cfg.Store.Scope = "alice"
	cfg.Server.MaxLimit = 16
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 12, loaded.Engine.MaxSuggestions)
	assert.Equal(t, 0.25, loaded.Engine.MinConfidence)
	assert.Equal(t, "alice", loaded.Store.Scope)
	assert.Equal(t, 16, loaded.Server.MaxLimit)
}

func TestLoadConfigFillsMissingSectionsWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[engine]\nmax_suggestions = 5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Engine.MaxSuggestions)
	assert.Equal(t, 0.1, cfg.Engine.MinConfidence)
	assert.Equal(t, "default", cfg.Store.Scope)
}

func TestPartialParseSalvagesValidSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[engine]\nmax_suggestions = 4\nmin_confidence = 0.3\n" +
		"[store]\nretention_days = \"soon\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Engine.MaxSuggestions)
	assert.Equal(t, 0.3, cfg.Engine.MinConfidence)
	// the mistyped retention value falls back to its default
	assert.Equal(t, 180, cfg.Store.RetentionDays)
}

func TestUpdatePersistsEngineLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	require.NoError(t, SaveConfig(cfg, path))

	limit := 20
	conf := 0.05
	require.NoError(t, cfg.Update(path, &limit, &conf))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 20, loaded.Engine.MaxSuggestions)
	assert.Equal(t, 0.05, loaded.Engine.MinConfidence)
}

func TestLoadConfigWithPriorityPrefersCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Engine.MaxSuggestions = 3
	require.NoError(t, SaveConfig(cfg, path))

	loaded, activePath, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, activePath)
	assert.Equal(t, 3, loaded.Engine.MaxSuggestions)
}
