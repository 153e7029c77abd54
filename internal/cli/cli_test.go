package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	// Point XDG directories at the test's sandbox so the suite never reads
	// or writes the developer's real config and cache.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	return New(io.Discard, LogInfo)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newTestCLI(t).RootCommand()

	want := []string{"search", "fetch", "formats", "publishers", "cache", "serve", "completion"}
	have := make(map[string]bool)
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestRootCommandName(t *testing.T) {
	root := newTestCLI(t).RootCommand()
	if root.Use != "govcat" {
		t.Errorf("Use = %q", root.Use)
	}
	if !root.SilenceUsage {
		t.Error("usage should be silenced on errors")
	}
}

func TestCacheDirHonorsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	got, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if want := filepath.Join(dir, "govcat"); got != want {
		t.Errorf("cacheDir = %q, want %q", got, want)
	}
}

func TestPriorityFromConfig(t *testing.T) {
	c := newTestCLI(t)

	p, err := c.priority()
	if err != nil {
		t.Fatalf("priority: %v", err)
	}
	if len(p) == 0 {
		t.Fatal("default priority is empty")
	}

	c.Config.Formats = "xml,csv"
	p, err = c.priority()
	if err != nil {
		t.Fatalf("priority: %v", err)
	}
	if p.String() != "xml,csv" {
		t.Errorf("priority = %q, want xml,csv", p.String())
	}

	c.Config.Formats = "csv,parquet"
	if _, err := c.priority(); err == nil {
		t.Error("expected error for unknown format in config")
	}
}

func TestConfigDefaultsAndOverrides(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	c := New(io.Discard, LogInfo)
	if c.Config.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want default", c.Config.BaseURL)
	}

	dir := filepath.Join(configHome, "govcat")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "base_url = \"https://example.org/api/datasets\"\nformats = \"xml,csv\"\ncache_backend = \"none\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c = New(io.Discard, LogInfo)
	if c.Config.BaseURL != "https://example.org/api/datasets" {
		t.Errorf("BaseURL = %q", c.Config.BaseURL)
	}
	if c.Config.Formats != "xml,csv" || c.Config.CacheBackend != "none" {
		t.Errorf("Config = %+v", c.Config)
	}
}

func TestMalformedConfigIsIgnored(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "govcat")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("base_url = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	if c.Config.BaseURL != DefaultBaseURL {
		t.Errorf("malformed config should fall back to defaults, got %q", c.Config.BaseURL)
	}
}
