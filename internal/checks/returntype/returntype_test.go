package returntype

import (
	"testing"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/phpparse"
	"github.com/phpray/phpray/internal/source"
)

func TestFlagsIncompatibleLiteralReturn(t *testing.T) {
	src := []byte(`<?php function g(): string { return 42; }`)
	p := phpparse.New(source.FileID(0), src)
	tree := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %+v", p.Errors())
	}
	bag := diag.NewBag(0)
	New().Run(check.Input{File: tree, Path: "t.php"}, diag.BagReporter{Bag: bag})
	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %+v", len(items), items)
	}
	d := items[0]
	if d.Identifier != diag.CodeReturnType {
		t.Fatalf("unexpected identifier: %s", d.Identifier)
	}
	if !contains(d.Message, "string") || !contains(d.Message, "int") {
		t.Fatalf("message should name both types: %q", d.Message)
	}
}

func TestAllowsCompatibleReturn(t *testing.T) {
	src := []byte(`<?php function g(): string { return "ok"; }`)
	p := phpparse.New(source.FileID(0), src)
	tree := p.Parse()
	bag := diag.NewBag(0)
	New().Run(check.Input{File: tree, Path: "t.php"}, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %+v", bag.Items())
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
