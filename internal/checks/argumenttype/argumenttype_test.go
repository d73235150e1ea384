package argumenttype

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

func TestFlagsIncompatibleLiteralArgument(t *testing.T) {
	in := parse(t, `<?php
function greet(string $name) { return $name; }
greet(42);
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	items := bag.Items()
	if len(items) != 1 || items[0].Identifier != diag.CodeArgumentType {
		t.Fatalf("expected one argument.type diagnostic, got %+v", items)
	}
}

func TestAllowsCompatibleLiteralArgument(t *testing.T) {
	in := parse(t, `<?php
function greet(string $name) { return $name; }
greet("bob");
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %+v", bag.Items())
	}
}

func TestAllowsNullForNullableParameter(t *testing.T) {
	in := parse(t, `<?php
function greet(?string $name) { return $name; }
greet(null);
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %+v", bag.Items())
	}
}

func TestAllowsIntForFloatParameter(t *testing.T) {
	in := parse(t, `<?php
function scale(float $f) { return $f; }
scale(2);
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %+v", bag.Items())
	}
}

func TestSkipsNonLiteralArgument(t *testing.T) {
	in := parse(t, `<?php
function greet(string $name) { return $name; }
$x = "bob";
greet($x);
`)
	bag := diag.NewBag(0)
	New().Run(in, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics for a non-literal argument, got %+v", bag.Items())
	}
}
