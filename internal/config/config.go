package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the recall configuration.
type Config struct {
	Search  SearchConfig  `yaml:"search"`
	UI      UIConfig      `yaml:"ui"`
	Update  UpdateConfig  `yaml:"update"`
	History HistoryConfig `yaml:"history"`
}

// SearchConfig holds interactive search settings.
type SearchConfig struct {
	FilterMode string `yaml:"filter_mode"` // global, host, session, directory

	// FilterModeShellUpKeyBinding overrides filter_mode when the search is
	// opened via the shell's up-key binding. Empty means no override.
	FilterModeShellUpKeyBinding string `yaml:"filter_mode_shell_up_key_binding"`

	SearchMode         string `yaml:"search_mode"`          // prefix, fulltext, fuzzy
	ExitMode           string `yaml:"exit_mode"`            // return-original, return-query
	WordChars          string `yaml:"word_chars"`           // characters treated as word constituents
	WordJumpMode       string `yaml:"word_jump_mode"`       // emacs, subl
	ScrollContextLines int    `yaml:"scroll_context_lines"` // rows kept visible on page jumps
}

// UIConfig holds rendering settings.
type UIConfig struct {
	ShowPreview bool   `yaml:"show_preview"` // render the preview pane
	Style       string `yaml:"style"`        // auto, compact, full
}

// UpdateConfig holds version-check settings.
type UpdateConfig struct {
	Check         bool   `yaml:"check"`          // enable the background version check
	URL           string `yaml:"url"`            // endpoint returning the latest version string
	IntervalHours int    `yaml:"interval_hours"` // cache lifetime for the check result
}

// HistoryConfig holds database and import settings.
type HistoryConfig struct {
	DBPath      string `yaml:"db_path"`      // database path (empty = default)
	ImportLimit int    `yaml:"import_limit"` // max entries imported per shell history file
}

// DefaultWordChars is the default set of word-constituent characters used
// for word-wise cursor movement and deletion.
const DefaultWordChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			FilterMode:                  "global",
			FilterModeShellUpKeyBinding: "",
			SearchMode:                  "fuzzy",
			ExitMode:                    "return-original",
			WordChars:                   DefaultWordChars,
			WordJumpMode:                "emacs",
			ScrollContextLines:          1,
		},
		UI: UIConfig{
			ShowPreview: false,
			Style:       "auto",
		},
		Update: UpdateConfig{
			Check:         true,
			URL:           "https://api.recall.sh/latest-version",
			IntervalHours: 24,
		},
		History: HistoryConfig{
			DBPath:      "", // Use default from paths
			ImportLimit: 25000,
		},
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	paths := DefaultPaths()
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	paths := DefaultPaths()
	return c.SaveToFile(paths.ConfigFile())
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get retrieves a configuration value by dot-separated key.
// For example: "search.filter_mode" or "ui.show_preview"
func (c *Config) Get(key string) (string, error) {
	parts := strings.SplitN(key, ".", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid key format: %s (expected section.field)", key)
	}

	switch parts[0] {
	case "search":
		return c.getSearchField(parts[1])
	case "ui":
		return c.getUIField(parts[1])
	case "update":
		return c.getUpdateField(parts[1])
	case "history":
		return c.getHistoryField(parts[1])
	default:
		return "", fmt.Errorf("unknown section: %s", parts[0])
	}
}

// Set sets a configuration value by dot-separated key.
func (c *Config) Set(key, value string) error {
	parts := strings.SplitN(key, ".", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid key format: %s (expected section.field)", key)
	}

	switch parts[0] {
	case "search":
		return c.setSearchField(parts[1], value)
	case "ui":
		return c.setUIField(parts[1], value)
	case "update":
		return c.setUpdateField(parts[1], value)
	case "history":
		return c.setHistoryField(parts[1], value)
	default:
		return fmt.Errorf("unknown section: %s", parts[0])
	}
}

func (c *Config) getSearchField(field string) (string, error) {
	switch field {
	case "filter_mode":
		return c.Search.FilterMode, nil
	case "filter_mode_shell_up_key_binding":
		return c.Search.FilterModeShellUpKeyBinding, nil
	case "search_mode":
		return c.Search.SearchMode, nil
	case "exit_mode":
		return c.Search.ExitMode, nil
	case "word_chars":
		return c.Search.WordChars, nil
	case "word_jump_mode":
		return c.Search.WordJumpMode, nil
	case "scroll_context_lines":
		return strconv.Itoa(c.Search.ScrollContextLines), nil
	default:
		return "", fmt.Errorf("unknown field: search.%s", field)
	}
}

func (c *Config) setSearchField(field, value string) error {
	switch field {
	case "filter_mode":
		if !isValidFilterMode(value) {
			return fmt.Errorf("search.filter_mode must be global, host, session, or directory (got: %s)", value)
		}
		c.Search.FilterMode = value
	case "filter_mode_shell_up_key_binding":
		if value != "" && !isValidFilterMode(value) {
			return fmt.Errorf("search.filter_mode_shell_up_key_binding must be empty or a filter mode (got: %s)", value)
		}
		c.Search.FilterModeShellUpKeyBinding = value
	case "search_mode":
		if !isValidSearchMode(value) {
			return fmt.Errorf("search.search_mode must be prefix, fulltext, or fuzzy (got: %s)", value)
		}
		c.Search.SearchMode = value
	case "exit_mode":
		if !isValidExitMode(value) {
			return fmt.Errorf("search.exit_mode must be return-original or return-query (got: %s)", value)
		}
		c.Search.ExitMode = value
	case "word_chars":
		c.Search.WordChars = value
	case "word_jump_mode":
		if !isValidWordJumpMode(value) {
			return fmt.Errorf("search.word_jump_mode must be emacs or subl (got: %s)", value)
		}
		c.Search.WordJumpMode = value
	case "scroll_context_lines":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("search.scroll_context_lines must be a non-negative integer (got: %s)", value)
		}
		c.Search.ScrollContextLines = n
	default:
		return fmt.Errorf("unknown field: search.%s", field)
	}
	return nil
}

func (c *Config) getUIField(field string) (string, error) {
	switch field {
	case "show_preview":
		return strconv.FormatBool(c.UI.ShowPreview), nil
	case "style":
		return c.UI.Style, nil
	default:
		return "", fmt.Errorf("unknown field: ui.%s", field)
	}
}

func (c *Config) setUIField(field, value string) error {
	switch field {
	case "show_preview":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("ui.show_preview must be true or false (got: %s)", value)
		}
		c.UI.ShowPreview = b
	case "style":
		if !isValidStyle(value) {
			return fmt.Errorf("ui.style must be auto, compact, or full (got: %s)", value)
		}
		c.UI.Style = value
	default:
		return fmt.Errorf("unknown field: ui.%s", field)
	}
	return nil
}

func (c *Config) getUpdateField(field string) (string, error) {
	switch field {
	case "check":
		return strconv.FormatBool(c.Update.Check), nil
	case "url":
		return c.Update.URL, nil
	case "interval_hours":
		return strconv.Itoa(c.Update.IntervalHours), nil
	default:
		return "", fmt.Errorf("unknown field: update.%s", field)
	}
}

func (c *Config) setUpdateField(field, value string) error {
	switch field {
	case "check":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("update.check must be true or false (got: %s)", value)
		}
		c.Update.Check = b
	case "url":
		c.Update.URL = value
	case "interval_hours":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("update.interval_hours must be a non-negative integer (got: %s)", value)
		}
		c.Update.IntervalHours = n
	default:
		return fmt.Errorf("unknown field: update.%s", field)
	}
	return nil
}

func (c *Config) getHistoryField(field string) (string, error) {
	switch field {
	case "db_path":
		return c.History.DBPath, nil
	case "import_limit":
		return strconv.Itoa(c.History.ImportLimit), nil
	default:
		return "", fmt.Errorf("unknown field: history.%s", field)
	}
}

func (c *Config) setHistoryField(field, value string) error {
	switch field {
	case "db_path":
		c.History.DBPath = value
	case "import_limit":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("history.import_limit must be a positive integer (got: %s)", value)
		}
		c.History.ImportLimit = n
	default:
		return fmt.Errorf("unknown field: history.%s", field)
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if !isValidFilterMode(c.Search.FilterMode) {
		return fmt.Errorf("search.filter_mode must be global, host, session, or directory (got: %s)", c.Search.FilterMode)
	}

	if c.Search.FilterModeShellUpKeyBinding != "" && !isValidFilterMode(c.Search.FilterModeShellUpKeyBinding) {
		return fmt.Errorf("search.filter_mode_shell_up_key_binding must be empty or a filter mode (got: %s)", c.Search.FilterModeShellUpKeyBinding)
	}

	if !isValidSearchMode(c.Search.SearchMode) {
		return fmt.Errorf("search.search_mode must be prefix, fulltext, or fuzzy (got: %s)", c.Search.SearchMode)
	}

	if !isValidExitMode(c.Search.ExitMode) {
		return fmt.Errorf("search.exit_mode must be return-original or return-query (got: %s)", c.Search.ExitMode)
	}

	if !isValidWordJumpMode(c.Search.WordJumpMode) {
		return fmt.Errorf("search.word_jump_mode must be emacs or subl (got: %s)", c.Search.WordJumpMode)
	}

	if c.Search.ScrollContextLines < 0 {
		return errors.New("search.scroll_context_lines must be >= 0")
	}

	if !isValidStyle(c.UI.Style) {
		return fmt.Errorf("ui.style must be auto, compact, or full (got: %s)", c.UI.Style)
	}

	if c.Update.IntervalHours < 0 {
		return errors.New("update.interval_hours must be >= 0")
	}

	// Clamp import limit to a sane range
	if c.History.ImportLimit <= 0 {
		c.History.ImportLimit = 25000
	}
	if c.History.ImportLimit > 100000 {
		c.History.ImportLimit = 100000
	}

	return nil
}

func isValidFilterMode(mode string) bool {
	switch mode {
	case "global", "host", "session", "directory":
		return true
	default:
		return false
	}
}

func isValidSearchMode(mode string) bool {
	switch mode {
	case "prefix", "fulltext", "fuzzy":
		return true
	default:
		return false
	}
}

func isValidExitMode(mode string) bool {
	switch mode {
	case "return-original", "return-query":
		return true
	default:
		return false
	}
}

func isValidWordJumpMode(mode string) bool {
	switch mode {
	case "emacs", "subl":
		return true
	default:
		return false
	}
}

func isValidStyle(style string) bool {
	switch style {
	case "auto", "compact", "full":
		return true
	default:
		return false
	}
}

// ApplyEnvOverrides applies environment variable overrides to the config.
// Environment variables override config file values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("RECALL_FILTER_MODE"); v != "" {
		if isValidFilterMode(v) {
			c.Search.FilterMode = v
		}
	}
	if v := os.Getenv("RECALL_SEARCH_MODE"); v != "" {
		if isValidSearchMode(v) {
			c.Search.SearchMode = v
		}
	}
	if v := os.Getenv("RECALL_DB_PATH"); v != "" {
		c.History.DBPath = v
	}
	if v := os.Getenv("RECALL_UPDATE_CHECK"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Update.Check = b
		}
	}
	if v := os.Getenv("RECALL_STYLE"); v != "" {
		if isValidStyle(v) {
			c.UI.Style = v
		}
	}
}

// DatabasePath resolves the database path from the config, falling back to
// the default location.
func (c *Config) DatabasePath() string {
	if c.History.DBPath != "" {
		return c.History.DBPath
	}
	return DefaultPaths().DatabaseFile()
}

// ListKeys returns user-facing configuration keys.
func ListKeys() []string {
	return []string{
		"search.filter_mode",
		"search.filter_mode_shell_up_key_binding",
		"search.search_mode",
		"search.exit_mode",
		"search.word_chars",
		"search.word_jump_mode",
		"search.scroll_context_lines",
		"ui.show_preview",
		"ui.style",
		"update.check",
		"update.url",
		"update.interval_hours",
		"history.db_path",
		"history.import_limit",
	}
}
