// Package fixsafety commits engine.Run's in-memory edit results to disk
// following spec §6.5's fix-safety protocol: back up the original file,
// write the new content atomically, and surface any write failure as a
// diagnostic rather than leaving a half-written file behind. Re-parse
// verification itself already happens inside engine.Run (opts.VerifyParse);
// this package only ever sees files that already passed it.
package fixsafety

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/engine"
)

// Options configures how fixes are committed to disk.
type Options struct {
	// BackupDir is the root a copy of each modified file is written under,
	// mirroring its original path. Empty disables backups.
	BackupDir string
}

// Committed records one file successfully written to disk.
type Committed struct {
	Path       string
	BackupPath string
	EditCount  int
}

// Commit writes every FileResult with a non-nil NewSource to disk. On any
// single file's write failure it restores that file from its backup (if one
// was made) and reports an io.error diagnostic for it, then continues with
// the remaining files — an unrelated file's fix should not be lost because
// another failed to write.
func Commit(results []engine.FileResult, opts Options) ([]Committed, []diag.Diagnostic) {
	var committed []Committed
	var failures []diag.Diagnostic

	for _, r := range results {
		if r.NewSource == nil {
			continue
		}

		info, statErr := os.Stat(r.Path)
		mode := os.FileMode(0o644)
		if statErr == nil {
			mode = info.Mode()
		}

		var backupPath string
		if opts.BackupDir != "" {
			bp, err := backupFile(r.Path, opts.BackupDir)
			if err != nil {
				failures = append(failures, ioFailure(r.Path, fmt.Errorf("backup: %w", err)))
				continue
			}
			backupPath = bp
		}

		if err := atomicWrite(r.Path, r.NewSource, mode); err != nil {
			if backupPath != "" {
				_ = restoreBackup(backupPath, r.Path)
			}
			failures = append(failures, ioFailure(r.Path, fmt.Errorf("write: %w", err)))
			continue
		}

		committed = append(committed, Committed{
			Path:       r.Path,
			BackupPath: backupPath,
			EditCount:  r.AppliedEdits,
		})
	}

	return committed, failures
}

func backupFile(path, backupDir string) (string, error) {
	original, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	dest := filepath.Join(backupDir, abs)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", err
	}
	if err := atomicWrite(dest, original, 0o644); err != nil {
		return "", err
	}
	return dest, nil
}

func restoreBackup(backupPath, originalPath string) error {
	content, err := os.ReadFile(backupPath)
	if err != nil {
		return err
	}
	return atomicWrite(originalPath, content, 0o644)
}

// atomicWrite writes content to path via a temp file in the same
// directory followed by a rename, so a crash mid-write never leaves path
// truncated or partially overwritten.
func atomicWrite(path string, content []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".phpray-tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func ioFailure(path string, err error) diag.Diagnostic {
	return diag.Diagnostic{
		Location:   diag.Location{Path: path},
		Severity:   diag.SevError,
		Identifier: diag.CodeIOError,
		Message:    err.Error(),
	}
}
