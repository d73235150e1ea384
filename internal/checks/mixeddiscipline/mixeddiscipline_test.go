package mixeddiscipline

import (
	"testing"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/phpparse"
	"github.com/phpray/phpray/internal/source"
)

func parse(t *testing.T, src string) check.Input {
	t.Helper()
	p := phpparse.New(source.FileID(0), []byte(src))
	tree := p.Parse()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %+v", errs)
	}
	return check.Input{File: tree, Path: "t.php"}
}

func TestExplicitCheckFlagsMixedParameter(t *testing.T) {
	in := parse(t, `<?php
function f(mixed $x) { return $x; }
`)
	bag := diag.NewBag(0)
	NewExplicit().Run(in, diag.BagReporter{Bag: bag})
	items := bag.Items()
	if len(items) != 1 || items[0].Identifier != diag.CodeMixedExplicitUsage {
		t.Fatalf("expected one mixed.explicitUsage diagnostic, got %+v", items)
	}
}

func TestExplicitCheckAllowsTypedParameter(t *testing.T) {
	in := parse(t, `<?php
function f(int $x) { return $x; }
`)
	bag := diag.NewBag(0)
	NewExplicit().Run(in, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %+v", bag.Items())
	}
}

func TestImplicitCheckFlagsUntypedParameter(t *testing.T) {
	in := parse(t, `<?php
function f($x) { return $x; }
`)
	bag := diag.NewBag(0)
	NewImplicit().Run(in, diag.BagReporter{Bag: bag})
	items := bag.Items()
	if len(items) != 1 || items[0].Identifier != diag.CodeMixedImplicitUsage {
		t.Fatalf("expected one mixed.implicitUsage diagnostic, got %+v", items)
	}
}

func TestImplicitCheckAllowsExplicitMixed(t *testing.T) {
	in := parse(t, `<?php
function f(mixed $x) { return $x; }
`)
	bag := diag.NewBag(0)
	NewImplicit().Run(in, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics — mixed is explicit, not implicit, got %+v", bag.Items())
	}
}
