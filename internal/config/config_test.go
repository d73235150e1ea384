package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadParsesNativeDialect(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "phpray.toml", `
[rules]
preset = "safe"
categories = ["modernize"]
php_version = "8.1"

[checks]
level = 5

[paths]
include = ["src"]
exclude = ["vendor"]
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rules.Preset != "safe" || cfg.Checks.Level != 5 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.Paths.Include) != 1 || cfg.Paths.Include[0] != "src" {
		t.Errorf("unexpected paths: %+v", cfg.Paths)
	}
}

func TestLoadWithIncludesMerges(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "base.toml", `
[checks]
level = 3

[paths]
exclude = ["vendor"]
`)
	main := writeTemp(t, dir, "phpray.toml", `
include = ["base.toml"]

[checks]
level = 8
`)
	cfg, err := LoadWithIncludes(main)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Checks.Level != 8 {
		t.Errorf("expected including file's level to win, got %d", cfg.Checks.Level)
	}
	if len(cfg.Paths.Exclude) != 1 || cfg.Paths.Exclude[0] != "vendor" {
		t.Errorf("expected base's exclude to survive merge, got %+v", cfg.Paths.Exclude)
	}
}

func TestLoadWithIncludesDetectsCycle(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "a.toml", `include = ["b.toml"]`)
	writeTemp(t, dir, "b.toml", `include = ["a.toml"]`)
	_, err := LoadWithIncludes(filepath.Join(dir, "a.toml"))
	if err == nil {
		t.Fatal("expected include cycle error")
	}
}
