package argscount

import (
	"testing"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/phpparse"
	"github.com/phpray/phpray/internal/source"
)

func TestFlagsTooFewArguments(t *testing.T) {
	src := []byte(`<?php function add($a, $b) { return $a + $b; } add(1);`)
	p := phpparse.New(source.FileID(0), src)
	tree := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %+v", p.Errors())
	}
	bag := diag.NewBag(0)
	New().Run(check.Input{File: tree, Path: "t.php"}, diag.BagReporter{Bag: bag})
	items := bag.Items()
	if len(items) != 1 || items[0].Identifier != diag.CodeArgumentsCount {
		t.Fatalf("expected one arguments.count diagnostic, got %+v", items)
	}
}

func TestAllowsDefaultedParameter(t *testing.T) {
	src := []byte(`<?php function add($a, $b = 0) { return $a + $b; } add(1); add(1, 2);`)
	p := phpparse.New(source.FileID(0), src)
	tree := p.Parse()
	bag := diag.NewBag(0)
	New().Run(check.Input{File: tree, Path: "t.php"}, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %+v", bag.Items())
	}
}

func TestAllowsVariadicParameter(t *testing.T) {
	src := []byte(`<?php function sum($first, ...$rest) { return $first; } sum(1, 2, 3, 4);`)
	p := phpparse.New(source.FileID(0), src)
	tree := p.Parse()
	bag := diag.NewBag(0)
	New().Run(check.Input{File: tree, Path: "t.php"}, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %+v", bag.Items())
	}
}
