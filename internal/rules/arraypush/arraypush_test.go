package arraypush

import (
	"testing"

	"github.com/phpray/phpray/internal/edit"
	"github.com/phpray/phpray/internal/phpparse"
	"github.com/phpray/phpray/internal/rule"
	"github.com/phpray/phpray/internal/source"
)

func TestRewritesSingleValuePush(t *testing.T) {
	src := []byte(`<?php $a = []; array_push($a, 1);`)
	p := phpparse.New(source.FileID(0), src)
	tree := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %+v", p.Errors())
	}
	edits := New().Apply(rule.Input{File: tree, Path: "t.php"})
	if len(edits) != 1 {
		t.Fatalf("expected exactly one edit, got %d", len(edits))
	}
	if edits[0].Replacement != "$a[] = 1" {
		t.Fatalf("unexpected replacement: %q", edits[0].Replacement)
	}
	out, err := edit.Apply(src, edits)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	want := `<?php $a = []; $a[] = 1;`
	if string(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestLeavesMultiValuePushAlone(t *testing.T) {
	src := []byte(`<?php array_push($a, 1, 2);`)
	p := phpparse.New(source.FileID(0), src)
	tree := p.Parse()
	edits := New().Apply(rule.Input{File: tree, Path: "t.php"})
	if len(edits) != 0 {
		t.Fatalf("expected no edits for a multi-value push, got %d", len(edits))
	}
}
