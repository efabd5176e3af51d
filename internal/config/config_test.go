package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Search.FilterMode != "global" {
		t.Errorf("Expected filter_mode=global, got %s", cfg.Search.FilterMode)
	}
	if cfg.Search.SearchMode != "fuzzy" {
		t.Errorf("Expected search_mode=fuzzy, got %s", cfg.Search.SearchMode)
	}
	if cfg.Search.ExitMode != "return-original" {
		t.Errorf("Expected exit_mode=return-original, got %s", cfg.Search.ExitMode)
	}
	if cfg.Search.WordJumpMode != "emacs" {
		t.Errorf("Expected word_jump_mode=emacs, got %s", cfg.Search.WordJumpMode)
	}
	if cfg.Search.ScrollContextLines != 1 {
		t.Errorf("Expected scroll_context_lines=1, got %d", cfg.Search.ScrollContextLines)
	}
	if cfg.UI.Style != "auto" {
		t.Errorf("Expected style=auto, got %s", cfg.UI.Style)
	}
	if !cfg.Update.Check {
		t.Error("Expected update.check=true by default")
	}
	if cfg.History.ImportLimit != 25000 {
		t.Errorf("Expected import_limit=25000, got %d", cfg.History.ImportLimit)
	}
}

func TestConfigGet(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		key      string
		expected string
	}{
		{"search.filter_mode", "global"},
		{"search.filter_mode_shell_up_key_binding", ""},
		{"search.search_mode", "fuzzy"},
		{"search.exit_mode", "return-original"},
		{"search.word_jump_mode", "emacs"},
		{"search.scroll_context_lines", "1"},
		{"ui.show_preview", "false"},
		{"ui.style", "auto"},
		{"update.check", "true"},
		{"update.interval_hours", "24"},
		{"history.db_path", ""},
		{"history.import_limit", "25000"},
	}

	for _, tt := range tests {
		got, err := cfg.Get(tt.key)
		if err != nil {
			t.Errorf("Get(%q) returned error: %v", tt.key, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.expected)
		}
	}
}

func TestConfigGetInvalidKey(t *testing.T) {
	cfg := DefaultConfig()

	for _, key := range []string{"nosuchsection.field", "search.nosuchfield", "noseparator"} {
		if _, err := cfg.Get(key); err == nil {
			t.Errorf("Get(%q) should have returned an error", key)
		}
	}
}

func TestConfigSet(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		key   string
		value string
		check func() string
	}{
		{"search.filter_mode", "session", func() string { return cfg.Search.FilterMode }},
		{"search.filter_mode_shell_up_key_binding", "directory", func() string { return cfg.Search.FilterModeShellUpKeyBinding }},
		{"search.search_mode", "prefix", func() string { return cfg.Search.SearchMode }},
		{"search.exit_mode", "return-query", func() string { return cfg.Search.ExitMode }},
		{"search.word_jump_mode", "subl", func() string { return cfg.Search.WordJumpMode }},
		{"ui.style", "compact", func() string { return cfg.UI.Style }},
	}

	for _, tt := range tests {
		if err := cfg.Set(tt.key, tt.value); err != nil {
			t.Errorf("Set(%q, %q) returned error: %v", tt.key, tt.value, err)
			continue
		}
		if got := tt.check(); got != tt.value {
			t.Errorf("after Set(%q, %q) field = %q", tt.key, tt.value, got)
		}
	}
}

func TestConfigSetInvalidValues(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		key   string
		value string
	}{
		{"search.filter_mode", "everything"},
		{"search.search_mode", "regex"},
		{"search.exit_mode", "abort"},
		{"search.word_jump_mode", "vim"},
		{"search.scroll_context_lines", "-1"},
		{"search.scroll_context_lines", "abc"},
		{"ui.show_preview", "maybe"},
		{"ui.style", "fancy"},
		{"history.import_limit", "0"},
	}

	for _, tt := range tests {
		if err := cfg.Set(tt.key, tt.value); err == nil {
			t.Errorf("Set(%q, %q) should have returned an error", tt.key, tt.value)
		}
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFromFile on missing file: %v", err)
	}
	if cfg.Search.FilterMode != "global" {
		t.Errorf("missing file should yield defaults, got filter_mode=%s", cfg.Search.FilterMode)
	}
}

func TestLoadFromFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Search.FilterMode = "host"
	cfg.Search.ScrollContextLines = 3
	cfg.UI.ShowPreview = true
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if loaded.Search.FilterMode != "host" {
		t.Errorf("filter_mode = %s, want host", loaded.Search.FilterMode)
	}
	if loaded.Search.ScrollContextLines != 3 {
		t.Errorf("scroll_context_lines = %d, want 3", loaded.Search.ScrollContextLines)
	}
	if !loaded.UI.ShowPreview {
		t.Error("show_preview should be true")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("search:\n  filter_mode: everything\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Error("LoadFromFile should reject an invalid filter_mode")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("RECALL_FILTER_MODE", "session")
	t.Setenv("RECALL_SEARCH_MODE", "prefix")
	t.Setenv("RECALL_DB_PATH", "/tmp/custom.db")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()

	if cfg.Search.FilterMode != "session" {
		t.Errorf("filter_mode = %s, want session", cfg.Search.FilterMode)
	}
	if cfg.Search.SearchMode != "prefix" {
		t.Errorf("search_mode = %s, want prefix", cfg.Search.SearchMode)
	}
	if cfg.History.DBPath != "/tmp/custom.db" {
		t.Errorf("db_path = %s, want /tmp/custom.db", cfg.History.DBPath)
	}
}

func TestApplyEnvOverridesIgnoresInvalid(t *testing.T) {
	t.Setenv("RECALL_FILTER_MODE", "bogus")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()

	if cfg.Search.FilterMode != "global" {
		t.Errorf("invalid env override should be ignored, got %s", cfg.Search.FilterMode)
	}
}

func TestImportLimitClamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.History.ImportLimit = 9999999
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.History.ImportLimit != 100000 {
		t.Errorf("import_limit should clamp to 100000, got %d", cfg.History.ImportLimit)
	}
}

func TestListKeysRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	for _, key := range ListKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("listed key %q is not gettable: %v", key, err)
		}
		if !strings.Contains(key, ".") {
			t.Errorf("key %q is missing a section", key)
		}
	}
}
