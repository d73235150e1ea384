package deadcode

import (
	"testing"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/phpparse"
	"github.com/phpray/phpray/internal/source"
	"github.com/phpray/phpray/internal/symbols"
)

func parse(t *testing.T, src string) check.Input {
	t.Helper()
	p := phpparse.New(source.FileID(0), []byte(src))
	tree := p.Parse()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %+v", errs)
	}
	tbl := symbols.NewTable()
	tbl.Scan(tree)
	tbl.Freeze()
	return check.Input{File: tree, Path: "t.php", Symbols: tbl}
}

func TestFlagsStatementAfterReturn(t *testing.T) {
	in := parse(t, `<?php
function f() {
	return 1;
	echo "never";
}
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	items := bag.Items()
	if len(items) != 1 || items[0].Identifier != diag.CodeDeadCodeUnreachable {
		t.Fatalf("expected one deadCode.unreachable diagnostic, got %+v", items)
	}
}

func TestAllowsStatementAfterConditionalReturn(t *testing.T) {
	in := parse(t, `<?php
function f($x) {
	if ($x) {
		return 1;
	}
	echo "reachable";
}
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %+v", bag.Items())
	}
}

func TestFlagsImpossibleInstanceof(t *testing.T) {
	in := parse(t, `<?php
class A {}
class B {}
function f(A $a) {
	if ($a instanceof B) {
		echo "never";
	}
}
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	items := bag.Items()
	if len(items) != 1 || items[0].Identifier != diag.CodeInstanceofAlwaysFalse {
		t.Fatalf("expected one instanceof.alwaysFalse diagnostic, got %+v", items)
	}
}

func TestAllowsInstanceofAgainstSubclass(t *testing.T) {
	in := parse(t, `<?php
class A {}
class B extends A {}
function f(A $a) {
	if ($a instanceof B) {
		echo "maybe";
	}
}
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %+v", bag.Items())
	}
}
