package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// discoverPHPFiles recursively walks roots, returning every *.php file
// whose path doesn't match an exclude glob. Globs are matched against
// both the file's base name and its slash-separated path relative to the
// root being walked, so `vendor/*` and `*_generated.php` both work as a
// user would expect.
func discoverPHPFiles(roots []string, excludeGlobs []string) ([]string, error) {
	var out []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", root, err)
		}
		if !info.IsDir() {
			if !excluded(root, root, excludeGlobs) {
				out = append(out, root)
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			if d.IsDir() {
				if excluded(path, rel, excludeGlobs) {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".php" {
				return nil
			}
			if excluded(path, rel, excludeGlobs) {
				return nil
			}
			out = append(out, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func excluded(path, rel string, globs []string) bool {
	base := filepath.Base(path)
	for _, g := range globs {
		if ok, _ := filepath.Match(g, base); ok {
			return true
		}
		if ok, _ := filepath.Match(g, rel); ok {
			return true
		}
		if strings.Contains(rel, strings.TrimSuffix(g, "/*")) && strings.HasSuffix(g, "/*") {
			return true
		}
	}
	return false
}
