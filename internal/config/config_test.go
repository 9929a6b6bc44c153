package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"renamer/internal/config"
	"renamer/internal/errors"
	"renamer/internal/history"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

const (
	validYAML = `
history:
  backend: sqlite
  path: /tmp/renamer-test/history.db
  max_entries: 50
log:
  level: debug
  format: json
defaults:
  regex: true
selection:
  include: ["*.jpg", "*.png"]
  exclude: ["*.tmp"]
theme:
  name: dark
`
	invalidSyntaxYAML = `
history:
  backend: "json
log: # Missing closing quote
`
	invalidBackendYAML = `
history:
  backend: bolt
`
)

func TestNewDefaults(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	assert.Equal(t, history.BackendJSON, cfg.History.Backend)
	assert.Equal(t, 100, cfg.History.MaxEntries)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.True(t, cfg.Inbox.Enabled)
	assert.False(t, cfg.Defaults.Regex)
	assert.False(t, cfg.Defaults.CaseInsensitive)
	assert.Empty(t, cfg.Selection.Include)
	assert.Equal(t, "default", cfg.Theme.Name)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, history.BackendJSON, cfg.History.Backend)
	})

	t.Run("valid file overrides defaults", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestYAML(t, validYAML))
		require.NoError(t, err)

		assert.Equal(t, history.BackendSQLite, cfg.History.Backend)
		assert.Equal(t, "/tmp/renamer-test/history.db", cfg.HistoryPath())
		assert.Equal(t, 50, cfg.History.MaxEntries)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.True(t, cfg.Defaults.Regex)
		assert.Equal(t, []string{"*.jpg", "*.png"}, cfg.Selection.Include)
		assert.Equal(t, []string{"*.tmp"}, cfg.Selection.Exclude)
		assert.Equal(t, "dark", cfg.Theme.Name)
		// untouched keys keep their defaults
		assert.True(t, cfg.Inbox.Enabled)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidSyntaxYAML))
		require.Error(t, err)
		assert.True(t, errors.IsInvalidConfig(err))
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidBackendYAML))
		require.Error(t, err)

		var cfgErr *errors.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "history.backend", cfgErr.Param())
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RENAMER_HISTORY_MAX_ENTRIES", "25")
	t.Setenv("RENAMER_LOG_LEVEL", "warn")
	t.Setenv("RENAMER_DEFAULTS_CASE_INSENSITIVE", "true")
	t.Setenv("RENAMER_SELECTION_EXCLUDE", "*.tmp,*.bak")

	path := createTestYAML(t, validYAML)
	cfg, err := config.LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.History.MaxEntries)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Defaults.CaseInsensitive)
	assert.Equal(t, []string{"*.tmp", "*.bak"}, cfg.Selection.Exclude)
	// file values not overridden by env survive
	assert.Equal(t, history.BackendSQLite, cfg.History.Backend)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		param  string
	}{
		{"unknown backend", func(c *config.Config) { c.History.Backend = "bolt" }, "history.backend"},
		{"zero max entries", func(c *config.Config) { c.History.MaxEntries = 0 }, "history.max_entries"},
		{"bad log level", func(c *config.Config) { c.Log.Level = "chatty" }, "log.level"},
		{"bad log format", func(c *config.Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad glob", func(c *config.Config) { c.Selection.Include = []string{"[a-"} }, "selection"},
		{"unknown theme", func(c *config.Config) { c.Theme.Name = "neon" }, "theme.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsInvalidConfig(err))

			var cfgErr *errors.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.param, cfgErr.Param())
		})
	}

	var nilCfg *config.Config
	assert.ErrorIs(t, nilCfg.Validate(), errors.ErrInvalidConfig)
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.New()
	cfg.History.Backend = history.BackendYAML
	cfg.History.MaxEntries = 7
	cfg.Selection.Exclude = []string{"*.part"}
	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, history.BackendYAML, loaded.History.Backend)
	assert.Equal(t, 7, loaded.History.MaxEntries)
	assert.Equal(t, []string{"*.part"}, loaded.Selection.Exclude)
}

func TestSaveConfigWriteError(t *testing.T) {
	path := t.TempDir()

	err := config.SaveConfig(config.New(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write config file "+path)
}

func TestDerivedPaths(t *testing.T) {
	cfg := config.New()

	assert.Equal(t, "history.json", filepath.Base(cfg.HistoryPath()))
	cfg.History.Backend = history.BackendYAML
	assert.Equal(t, "history.yaml", filepath.Base(cfg.HistoryPath()))
	cfg.History.Backend = history.BackendSQLite
	assert.Equal(t, "history.db", filepath.Base(cfg.HistoryPath()))
	cfg.History.Backend = history.BackendMemory
	assert.Empty(t, cfg.HistoryPath())

	assert.Equal(t, "renamer", filepath.Base(cfg.InboxDir()))
	cfg.Inbox.Dir = "/srv/inbox"
	assert.Equal(t, "/srv/inbox", cfg.InboxDir())

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	cfg.History.Path = "~/h.json"
	assert.Equal(t, filepath.Join(home, "h.json"), cfg.HistoryPath())
}

func TestSelectionFilter(t *testing.T) {
	cfg := config.New()
	cfg.Selection.Exclude = []string{"*.tmp"}

	f, err := cfg.SelectionFilter()
	require.NoError(t, err)
	assert.True(t, f.Match("/a/photo.jpg"))
	assert.False(t, f.Match("/a/photo.tmp"))
}

func TestGetTheme(t *testing.T) {
	assert.Equal(t, config.GetTheme("default"), config.GetTheme("missing"))
	assert.Contains(t, config.GetTheme("dark"), "primary")
}
