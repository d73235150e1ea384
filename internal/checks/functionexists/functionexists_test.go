package functionexists

import (
	"testing"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/phpparse"
	"github.com/phpray/phpray/internal/source"
	"github.com/phpray/phpray/internal/symbols"
)

func TestFlagsCallToUndeclaredFunction(t *testing.T) {
	src := []byte(`<?php totally_made_up_helper(1);`)
	p := phpparse.New(source.FileID(0), src)
	tree := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %+v", p.Errors())
	}
	tbl := symbols.NewTable()
	tbl.Scan(tree)
	tbl.Freeze()
	bag := diag.NewBag(0)
	New().Run(check.Input{File: tree, Path: "t.php", Symbols: tbl}, diag.BagReporter{Bag: bag})
	items := bag.Items()
	if len(items) != 1 || items[0].Identifier != diag.CodeFunctionNotFound {
		t.Fatalf("expected one function.notFound diagnostic, got %+v", items)
	}
}

func TestAllowsDeclaredAndBuiltinCalls(t *testing.T) {
	src := []byte(`<?php function helper() {} helper(); strlen("x");`)
	p := phpparse.New(source.FileID(0), src)
	tree := p.Parse()
	tbl := symbols.NewTable()
	tbl.Scan(tree)
	tbl.Freeze()
	bag := diag.NewBag(0)
	New().Run(check.Input{File: tree, Path: "t.php", Symbols: tbl}, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %+v", bag.Items())
	}
}
