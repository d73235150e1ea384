package nullableaccess

import (
	"testing"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/phpparse"
	"github.com/phpray/phpray/internal/source"
)

func TestNoDiagnosticWhenNarrowedByEarlyReturn(t *testing.T) {
	src := []byte(`<?php function h(?User $u): string {
    if ($u === null) { return ""; }
    return $u->getName();
}`)
	p := phpparse.New(source.FileID(0), src)
	tree := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %+v", p.Errors())
	}
	bag := diag.NewBag(0)
	New().Run(check.Input{File: tree, Path: "t.php"}, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected narrowing to suppress nullable.access, got %+v", bag.Items())
	}
}

func TestFlagsUnguardedAccess(t *testing.T) {
	src := []byte(`<?php function h(?User $u): string {
    return $u->getName();
}`)
	p := phpparse.New(source.FileID(0), src)
	tree := p.Parse()
	bag := diag.NewBag(0)
	New().Run(check.Input{File: tree, Path: "t.php"}, diag.BagReporter{Bag: bag})
	items := bag.Items()
	if len(items) != 1 || items[0].Identifier != diag.CodeNullableAccess {
		t.Fatalf("expected one nullable.access diagnostic, got %+v", items)
	}
}

func TestNullsafeOperatorSuppresses(t *testing.T) {
	src := []byte(`<?php function h(?User $u): string {
    return $u?->getName();
}`)
	p := phpparse.New(source.FileID(0), src)
	tree := p.Parse()
	bag := diag.NewBag(0)
	New().Run(check.Input{File: tree, Path: "t.php"}, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected ?-> to suppress nullable.access, got %+v", bag.Items())
	}
}
