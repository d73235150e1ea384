// Package config loads the engine's own native TOML configuration and
// merges in PHPStan-compatible external dialect files (spec §4.4, §4.5).
// The native format is parsed with BurntSushi/toml the way the teacher
// loads its own project manifests.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// RuleConfig is the `[rules]` section: the preset/category/version/skip
// selection axes spec §4.3 defines.
type RuleConfig struct {
	Preset     string   `toml:"preset"`
	Categories []string `toml:"categories"`
	PHPVersion string   `toml:"php_version"`
	Skip       []string `toml:"skip"`
}

// CheckConfig is the `[checks]` section controlling strictness level.
type CheckConfig struct {
	Level int `toml:"level"`
}

// PathConfig is the `[paths]` section scoping which files are analyzed.
type PathConfig struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// CacheConfig is the `[cache]` section (spec's supplemental declaration
// cache, see SPEC_FULL.md domain stack).
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// BaselineConfig is the `[baseline]` section pointing at a PHPStan-dialect
// baseline/ignore file (spec §4.4).
type BaselineConfig struct {
	Path        string `toml:"path"`
	MaxBudget   int    `toml:"max_budget"`
}

// FixConfig is the `[fix]` section controlling the fix-safety protocol
// (spec §6.5): where backups land and whether applied edits are
// re-parsed before being accepted.
type FixConfig struct {
	BackupDir string `toml:"backup_dir"`
	Verify    bool   `toml:"verify"`
}

// EngineConfig is the root of the engine's native TOML dialect.
type EngineConfig struct {
	Include  []string       `toml:"include"`
	Rules    RuleConfig     `toml:"rules"`
	Checks   CheckConfig    `toml:"checks"`
	Paths    PathConfig     `toml:"paths"`
	Cache    CacheConfig    `toml:"cache"`
	Baseline BaselineConfig `toml:"baseline"`
	Fix      FixConfig      `toml:"fix"`
}

// Load parses a single native TOML config file without resolving includes.
// Callers that need include resolution should use LoadWithIncludes.
func Load(path string) (EngineConfig, error) {
	var cfg EngineConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, nil
}

// Merge layers other on top of base: scalar fields in other win when set;
// slice fields are appended. Used when an `include` chain resolves to
// several files that each contribute partial configuration.
func Merge(base, other EngineConfig) EngineConfig {
	out := base
	if other.Rules.Preset != "" {
		out.Rules.Preset = other.Rules.Preset
	}
	out.Rules.Categories = append(out.Rules.Categories, other.Rules.Categories...)
	if other.Rules.PHPVersion != "" {
		out.Rules.PHPVersion = other.Rules.PHPVersion
	}
	out.Rules.Skip = append(out.Rules.Skip, other.Rules.Skip...)
	if other.Checks.Level != 0 {
		out.Checks.Level = other.Checks.Level
	}
	out.Paths.Include = append(out.Paths.Include, other.Paths.Include...)
	out.Paths.Exclude = append(out.Paths.Exclude, other.Paths.Exclude...)
	if other.Cache.Dir != "" {
		out.Cache = other.Cache
	}
	if other.Baseline.Path != "" {
		out.Baseline = other.Baseline
	}
	if other.Fix.BackupDir != "" {
		out.Fix = other.Fix
	}
	return out
}
