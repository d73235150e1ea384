package missingtype

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

func TestFlagsUntypedParameterAndReturn(t *testing.T) {
	in := parse(t, `<?php
function add($a, $b) { return $a + $b; }
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	items := bag.Items()
	if len(items) != 3 {
		t.Fatalf("expected 2 missingType.parameter + 1 missingType.return, got %+v", items)
	}
}

func TestAllowsFullyTypedFunction(t *testing.T) {
	in := parse(t, `<?php
function add(int $a, int $b): int { return $a + $b; }
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %+v", bag.Items())
	}
}

func TestFlagsUntypedProperty(t *testing.T) {
	in := parse(t, `<?php
class Foo {
	public $bar;
}
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	items := bag.Items()
	if len(items) != 1 || items[0].Identifier != diag.CodeMissingTypeProperty {
		t.Fatalf("expected one missingType.property diagnostic, got %+v", items)
	}
}

func TestAllowsConstructorWithoutReturnType(t *testing.T) {
	in := parse(t, `<?php
class Foo {
	public function __construct(int $x) {}
}
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %+v", bag.Items())
	}
}
