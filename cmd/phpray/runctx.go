package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/config"
	"github.com/phpray/phpray/internal/ignore"
	"github.com/phpray/phpray/internal/rule"
	"github.com/phpray/phpray/internal/source"
)

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func readFile(path string) ([]byte, error) {
	// #nosec G304 -- path comes from configuration the user supplied, not untrusted input
	return os.ReadFile(path)
}

// loadEngineConfig finds and parses phpray.toml, walking from cwd upward
// when explicitPath is empty (spec §6.1's "auto-walking from CWD upward").
// A missing config is not an error: callers get EngineConfig's zero value,
// which selects every rule/check at level 0.
func loadEngineConfig(explicitPath string) (config.EngineConfig, error) {
	path := explicitPath
	if path == "" {
		found, ok := discoverConfigPath(".")
		if !ok {
			return config.EngineConfig{}, nil
		}
		path = found
	}
	return config.LoadWithIncludes(path)
}

func discoverConfigPath(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, "phpray.toml")
		if fileExists(candidate) {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// loadIgnoreFilter builds a baseline Filter from cfg.Baseline.Path, or nil
// if no baseline is configured.
func loadIgnoreFilter(cfg config.EngineConfig) (*ignore.Filter, error) {
	if cfg.Baseline.Path == "" {
		return nil, nil
	}
	content, err := readFile(cfg.Baseline.Path)
	if err != nil {
		return nil, fmt.Errorf("baseline %s: %w", cfg.Baseline.Path, err)
	}
	entries, err := config.ParseIgnoreFile(content)
	if err != nil {
		return nil, fmt.Errorf("baseline %s: %w", cfg.Baseline.Path, err)
	}
	return ignore.New(entries), nil
}

// selectedRules resolves the rule set the config's [rules] section names.
func selectedRules(reg *rule.Registry, cfg config.EngineConfig) []rule.Rule {
	return reg.Select(rule.Selection{
		Preset:     cfg.Rules.Preset,
		Categories: cfg.Rules.Categories,
		PHPVersion: cfg.Rules.PHPVersion,
		Skip:       cfg.Rules.Skip,
	})
}

// selectedChecks resolves the checks enabled by the config's [checks]
// level (spec §4.6: "enabling level N enables 0..N").
func selectedChecks(reg *check.Registry, cfg config.EngineConfig) []check.Check {
	return reg.Active(check.Level(cfg.Checks.Level))
}

// loadFileSet discovers and reads every .php file under the configured
// paths (or args when non-empty, letting a single invocation target one
// file without touching [paths] at all).
func loadFileSet(args []string, cfg config.EngineConfig) (*source.FileSet, []source.FileID, error) {
	roots := args
	if len(roots) == 0 {
		roots = cfg.Paths.Include
	}
	if len(roots) == 0 {
		roots = []string{"."}
	}

	paths, err := discoverPHPFiles(roots, cfg.Paths.Exclude)
	if err != nil {
		return nil, nil, err
	}

	fset := source.NewFileSet()
	ids := make([]source.FileID, 0, len(paths))
	for _, p := range paths {
		id, err := fset.Load(p)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", p, err)
		}
		ids = append(ids, id)
	}
	return fset, ids, nil
}
