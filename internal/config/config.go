package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"renamer/internal/errors"
	"renamer/internal/history"
	"renamer/internal/log"
	"renamer/internal/selection"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables that override the file,
// e.g. RENAMER_HISTORY_MAX_ENTRIES sets history.max_entries
const EnvPrefix = "RENAMER_"

// Config represents the application configuration structure.
type Config struct {
	History struct {
		Backend    string `yaml:"backend"`     // json, yaml, sqlite or memory
		Path       string `yaml:"path"`        // Store location; derived from the backend when empty
		MaxEntries int    `yaml:"max_entries"` // Entries kept, oldest evicted first
	} `yaml:"history"`
	Log struct {
		Level  string `yaml:"level"`  // debug, info, warn or error
		Format string `yaml:"format"` // text or json
		File   string `yaml:"file"`   // Optional file receiving a copy of every line
	} `yaml:"log"`
	Inbox struct {
		Dir     string `yaml:"dir"`     // Drop directory for selections forwarded by a second instance
		Enabled bool   `yaml:"enabled"` // Accept forwarded selections in the TUI
	} `yaml:"inbox"`
	Defaults struct {
		Regex           bool `yaml:"regex"`            // Initial regex toggle
		CaseInsensitive bool `yaml:"case_insensitive"` // Initial ignore-case toggle
	} `yaml:"defaults"`
	Selection struct {
		Include []string `yaml:"include"` // Globs a base name must match (all when empty)
		Exclude []string `yaml:"exclude"` // Globs that drop a file from the selection
	} `yaml:"selection"`
	Theme struct {
		Name string `yaml:"name"` // Theme name (default, dark, light, monochrome)
	} `yaml:"theme"`
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/renamer/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "renamer", "config.yaml")
}

// defaults as a flat koanf map
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"history.backend":           history.BackendJSON,
		"history.path":              "",
		"history.max_entries":       100,
		"log.level":                 "info",
		"log.format":                "text",
		"log.file":                  "",
		"inbox.dir":                 "",
		"inbox.enabled":             true,
		"defaults.regex":            false,
		"defaults.case_insensitive": false,
		"selection.include":         []string{},
		"selection.exclude":         []string{},
		"theme.name":                "default",
	}
}

// New returns the default configuration
func New() *Config {
	cfg, err := load("", false)
	if err != nil {
		// defaults alone always load
		panic(err)
	}
	return cfg
}

// LoadConfig loads configuration from the default location
func LoadConfig() (*Config, error) {
	return LoadConfigFile(DefaultConfigPath())
}

// LoadConfigFile layers defaults, the YAML file at path and RENAMER_*
// environment variables, in that order. A missing file is not an error.
func LoadConfigFile(path string) (*Config, error) {
	return load(path, true)
}

func load(path string, withEnv bool) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
		}
	}

	if withEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to load env vars: %w", err)
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "yaml",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			TagName:          "yaml",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.NewConfigError("failed to unmarshal configuration", path, errors.InvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps RENAMER_HISTORY_MAX_ENTRIES to history.max_entries: the first
// segment is the section, the rest is the snake_case key
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, key, found := strings.Cut(s, "_")
	if !found {
		return s
	}
	return section + "." + key
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yamlv3.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}
	return nil
}

// Validate checks if the configuration is valid.
// Errors are *errors.ConfigError naming the offending setting.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrInvalidConfig
	}

	validBackend := false
	for _, b := range history.Backends {
		if c.History.Backend == b {
			validBackend = true
			break
		}
	}
	if !validBackend {
		return invalid("history.backend", fmt.Errorf("unknown backend %q", c.History.Backend))
	}
	if c.History.MaxEntries < 1 {
		return invalid("history.max_entries", fmt.Errorf("must be >= 1, got %d", c.History.MaxEntries))
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return invalid("log.format", fmt.Errorf("must be text or json, got %q", c.Log.Format))
	}

	if _, err := selection.NewFilter(c.Selection.Include, c.Selection.Exclude); err != nil {
		return invalid("selection", err)
	}

	if _, ok := themes[c.Theme.Name]; !ok && c.Theme.Name != "" {
		return invalid("theme.name", fmt.Errorf("unknown theme %q", c.Theme.Name))
	}
	return nil
}

func invalid(param string, err error) error {
	return errors.NewConfigError("invalid value", param, errors.InvalidConfig, err)
}

// HistoryPath returns where the history backend stores its data
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return expandHome(c.History.Path)
	}
	dir := filepath.Join(xdg.DataHome, "renamer")
	switch c.History.Backend {
	case history.BackendYAML:
		return filepath.Join(dir, "history.yaml")
	case history.BackendSQLite:
		return filepath.Join(dir, "history.db")
	case history.BackendMemory:
		return ""
	default:
		return filepath.Join(dir, "history.json")
	}
}

// InboxDir returns the directory second instances drop selections into
func (c *Config) InboxDir() string {
	if c.Inbox.Dir != "" {
		return expandHome(c.Inbox.Dir)
	}
	return filepath.Join(xdg.RuntimeDir, "renamer")
}

// SelectionFilter compiles the include/exclude globs
func (c *Config) SelectionFilter() (*selection.Filter, error) {
	return selection.NewFilter(c.Selection.Include, c.Selection.Exclude)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

var themes = map[string]map[string]string{
	"default": {
		"primary":  "213", // Purple
		"success":  "114", // Green
		"warning":  "220", // Yellow
		"error":    "196", // Red
		"info":     "39",  // Blue
		"emphasis": "212", // Light Pink
		"muted":    "241", // Grey
	},
	"dark": {
		"primary":  "105",
		"success":  "78",
		"warning":  "214",
		"error":    "160",
		"info":     "33",
		"emphasis": "147",
		"muted":    "238",
	},
	"light": {
		"primary":  "135",
		"success":  "28",
		"warning":  "130",
		"error":    "124",
		"info":     "25",
		"emphasis": "90",
		"muted":    "246",
	},
	"monochrome": {
		"primary":  "252",
		"success":  "255",
		"warning":  "250",
		"error":    "255",
		"info":     "248",
		"emphasis": "255",
		"muted":    "243",
	},
}

// GetTheme returns a predefined palette of 256-colour codes by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	if theme, ok := themes[name]; ok {
		return theme
	}
	return themes["default"]
}
