package uniondiscipline

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

func TestFlagsMethodMissingOnOneUnionArm(t *testing.T) {
	in := parse(t, `<?php
class A { public function go() {} }
class B {}
function f(A|B $x) {
	$x->go();
}
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	items := bag.Items()
	if len(items) != 1 || items[0].Identifier != diag.CodeMethodNotFoundInUnion {
		t.Fatalf("expected one method.notFoundInUnion diagnostic, got %+v", items)
	}
}

func TestAllowsMethodPresentOnEveryUnionArm(t *testing.T) {
	in := parse(t, `<?php
class A { public function go() {} }
class B { public function go() {} }
function f(A|B $x) {
	$x->go();
}
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %+v", bag.Items())
	}
}

func TestFlagsPropertyMissingOnOneUnionArm(t *testing.T) {
	in := parse(t, `<?php
class A { public $x; }
class B {}
function f(A|B $v) {
	echo $v->x;
}
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	items := bag.Items()
	if len(items) != 1 || items[0].Identifier != diag.CodePropertyNotFoundInUnion {
		t.Fatalf("expected one property.notFoundInUnion diagnostic, got %+v", items)
	}
}
