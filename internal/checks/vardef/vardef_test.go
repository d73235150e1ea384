package vardef

import (
	"testing"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/phpparse"
	"github.com/phpray/phpray/internal/source"
)

func TestFlagsPossiblyUndefinedAfterConditionalAssign(t *testing.T) {
	src := []byte(`<?php function f($c) { if ($c) { $x = 1; } return $x; }`)
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
	if items[0].Identifier != diag.CodeVariablePossiblyUndefined {
		t.Fatalf("unexpected identifier: %s", items[0].Identifier)
	}
}

func TestNoDiagnosticWhenDefinedOnEveryPath(t *testing.T) {
	src := []byte(`<?php function f($c) { if ($c) { $x = 1; } else { $x = 2; } return $x; }`)
	p := phpparse.New(source.FileID(0), src)
	tree := p.Parse()
	bag := diag.NewBag(0)
	New().Run(check.Input{File: tree, Path: "t.php"}, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %+v", bag.Items())
	}
}

func TestIssetNarrowsTrueBranch(t *testing.T) {
	src := []byte(`<?php function f() { if (isset($c)) { echo $c; } }`)
	p := phpparse.New(source.FileID(0), src)
	tree := p.Parse()
	bag := diag.NewBag(0)
	New().Run(check.Input{File: tree, Path: "t.php"}, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected isset() to narrow $c to definite inside the true branch, got %+v", bag.Items())
	}
}
