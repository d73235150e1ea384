package classexists

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

func TestFlagsNewOfUndeclaredClass(t *testing.T) {
	in := parse(t, `<?php
class Foo {}
$x = new Bar();
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	items := bag.Items()
	if len(items) != 1 || items[0].Identifier != diag.CodeClassNotFound {
		t.Fatalf("expected one class.notFound diagnostic, got %+v", items)
	}
}

func TestAllowsNewOfDeclaredClass(t *testing.T) {
	in := parse(t, `<?php
class Foo {}
$x = new Foo();
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %+v", bag.Items())
	}
}

func TestFlagsUndefinedStaticMethod(t *testing.T) {
	in := parse(t, `<?php
class Foo {
	public static function bar() {}
}
Foo::baz();
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	items := bag.Items()
	if len(items) != 1 || items[0].Identifier != diag.CodeStaticMethodNotFound {
		t.Fatalf("expected one staticMethod.notFound diagnostic, got %+v", items)
	}
}

func TestFlagsUndefinedClassConstant(t *testing.T) {
	in := parse(t, `<?php
class Foo {
	const BAR = 1;
}
echo Foo::BAZ;
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	items := bag.Items()
	if len(items) != 1 || items[0].Identifier != diag.CodeClassConstantNotFound {
		t.Fatalf("expected one classConstant.notFound diagnostic, got %+v", items)
	}
}

func TestIgnoresBuiltinClasses(t *testing.T) {
	in := parse(t, `<?php
$e = new Exception("boom");
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics for builtin class, got %+v", bag.Items())
	}
}

func TestSelfInsideMethodResolvesToOwnClass(t *testing.T) {
	in := parse(t, `<?php
class Foo {
	const BAR = 1;
	public function make() {
		return new self();
	}
	public function readBar() {
		return self::BAR;
	}
}
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %+v", bag.Items())
	}
}
