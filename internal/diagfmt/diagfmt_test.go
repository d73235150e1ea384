package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/source"
)

func sampleDiag(fs *source.FileSet, id source.FileID, line uint32) diag.Diagnostic {
	return diag.Diagnostic{
		Location: diag.Location{
			Path: fs.Get(id).Path,
			Line: line, Column: 5,
			Span: source.Span{File: id, Start: 0, End: 1},
		},
		Severity:   diag.SevWarning,
		Identifier: diag.CodeFunctionNotFound,
		Message:    "call to undefined function foo()",
	}
}

func TestJSONProducesStableWireShape(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.php", []byte("<?php\nfoo();\n"))
	d := sampleDiag(fs, id, 2)

	var buf bytes.Buffer
	if err := JSON(&buf, []diag.Diagnostic{d}, nil, fs, JSONOpts{PathMode: PathModeAuto}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var agg Aggregate
	if err := json.Unmarshal(buf.Bytes(), &agg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if agg.Totals.Errors != 0 {
		t.Fatalf("expected zero errors (diagnostic was a warning), got %d", agg.Totals.Errors)
	}
	var found bool
	for _, entry := range agg.Files {
		for _, m := range entry.Messages {
			if m.Identifier == string(diag.CodeFunctionNotFound) && m.Line == 2 && !m.Ignorable {
				t.Fatalf("function.notFound should be ignorable")
			}
			if m.Identifier == string(diag.CodeFunctionNotFound) && m.Line == 2 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected diagnostic in aggregation, got %+v", agg)
	}
}

func TestPrettyRendersHeaderAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.php", []byte("<?php\nfoo();\n"))
	d := sampleDiag(fs, id, 2)

	var buf bytes.Buffer
	Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{Color: false, PathMode: PathModeAuto})

	out := buf.String()
	if !strings.Contains(out, "function.notFound") {
		t.Fatalf("expected identifier in output, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected caret underline, got %q", out)
	}
}

func TestTruncateGraphemeSafeKeepsEmojiIntact(t *testing.T) {
	line := "echo 'long string with an emoji 👩‍👩‍👧‍👦 at the end';"
	got := truncateGraphemeSafe(line, 10)
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if strings.Contains(got, "�") {
		t.Fatalf("truncation produced a replacement character: %q", got)
	}
}

func TestTruncateGraphemeSafeNoopUnderLimit(t *testing.T) {
	line := "short"
	if got := truncateGraphemeSafe(line, 100); got != line {
		t.Fatalf("expected no-op, got %q", got)
	}
}

func TestEditsJSONEmptyIsArray(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.php", []byte("<?php $a[] = 1;"))
	_ = id
	var buf bytes.Buffer
	if err := EditsJSON(&buf, nil); err != nil {
		t.Fatalf("EditsJSON: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", buf.String())
	}
}
