package diag

import (
	"testing"

	"github.com/phpray/phpray/internal/source"
)

func TestBagRespectsCapacity(t *testing.T) {
	b := NewBag(2)
	ok1 := b.Add(Diagnostic{Identifier: CodeVariableUndefined})
	ok2 := b.Add(Diagnostic{Identifier: CodeVariableUndefined})
	ok3 := b.Add(Diagnostic{Identifier: CodeVariableUndefined})
	if !ok1 || !ok2 {
		t.Fatal("first two adds should succeed")
	}
	if ok3 {
		t.Fatal("third add should be rejected by capacity")
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", b.Len())
	}
}

func TestBagSortOrdersByPathThenSpanThenIdentifier(t *testing.T) {
	b := NewBag(0)
	b.Add(Diagnostic{Location: Location{Path: "b.php", Span: source.Span{Start: 1}}, Identifier: CodeClassNotFound})
	b.Add(Diagnostic{Location: Location{Path: "a.php", Span: source.Span{Start: 5}}, Identifier: CodeVariableUndefined})
	b.Add(Diagnostic{Location: Location{Path: "a.php", Span: source.Span{Start: 1}}, Identifier: CodeReturnType})
	b.Sort()
	items := b.Items()
	if items[0].Location.Path != "a.php" || items[0].Location.Span.Start != 1 {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[1].Location.Path != "a.php" || items[1].Location.Span.Start != 5 {
		t.Errorf("unexpected second item: %+v", items[1])
	}
	if items[2].Location.Path != "b.php" {
		t.Errorf("unexpected third item: %+v", items[2])
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(0)
	d := Diagnostic{Location: Location{Path: "a.php", Span: source.Span{Start: 1, End: 2}}, Identifier: CodeVariableUndefined}
	b.Add(d)
	b.Add(d)
	b.Dedup()
	if b.Len() != 1 {
		t.Fatalf("expected dedup to collapse to 1 item, got %d", b.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	b := NewBag(0)
	b.Add(Diagnostic{Severity: SevWarning})
	if b.HasErrors() {
		t.Fatal("warning-only bag should not report errors")
	}
	b.Add(Diagnostic{Severity: SevError})
	if !b.HasErrors() {
		t.Fatal("bag with an error diagnostic should report HasErrors")
	}
}
