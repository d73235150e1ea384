package fixsafety

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/phpray/phpray/internal/engine"
)

func TestCommitWritesNewSourceAndBacksUpOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.php")
	original := []byte("<?php $a = []; array_push($a, 1);")
	if err := os.WriteFile(path, original, 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	backupDir := t.TempDir()
	results := []engine.FileResult{
		{Path: path, NewSource: []byte("<?php $a = []; $a[] = 1;"), AppliedEdits: 1},
	}

	committed, failures := Commit(results, Options{BackupDir: backupDir})
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %+v", failures)
	}
	if len(committed) != 1 {
		t.Fatalf("expected one committed file, got %d", len(committed))
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read committed file: %v", err)
	}
	if string(got) != "<?php $a = []; $a[] = 1;" {
		t.Fatalf("got %q", got)
	}

	backupContent, err := os.ReadFile(committed[0].BackupPath)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backupContent) != string(original) {
		t.Fatalf("backup %q does not match original %q", backupContent, original)
	}
}

func TestCommitSkipsFilesWithoutNewSource(t *testing.T) {
	results := []engine.FileResult{{Path: "unchanged.php"}}
	committed, failures := Commit(results, Options{})
	if len(committed) != 0 || len(failures) != 0 {
		t.Fatalf("expected no-op, got committed=%+v failures=%+v", committed, failures)
	}
}
