package ignore

import (
	"testing"

	"github.com/phpray/phpray/internal/config"
	"github.com/phpray/phpray/internal/diag"
)

func TestFilterRegexMatchAndBudget(t *testing.T) {
	f := New([]config.IgnoreEntry{
		{Message: `#^Call to an undefined method#`, Count: 1},
	})
	d1 := diag.Diagnostic{Message: "Call to an undefined method User::getName()", Identifier: diag.CodeMethodNotFound}
	d2 := diag.Diagnostic{Message: "Call to an undefined method User::getAge()", Identifier: diag.CodeMethodNotFound}
	res := f.Apply([]diag.Diagnostic{d1, d2})
	if len(res.Kept) != 1 {
		t.Fatalf("expected 1 surviving diagnostic (budget exhausted), got %d", len(res.Kept))
	}
	if res.Suppressed != 1 {
		t.Errorf("expected 1 suppressed, got %d", res.Suppressed)
	}
}

func TestFilterSubstringMatch(t *testing.T) {
	f := New([]config.IgnoreEntry{{Message: "undefined variable"}})
	d := diag.Diagnostic{Message: "undefined variable $foo", Identifier: diag.CodeVariableUndefined}
	res := f.Apply([]diag.Diagnostic{d})
	if len(res.Kept) != 0 || res.Suppressed != 1 {
		t.Fatalf("expected substring match to suppress, got %+v", res)
	}
}

func TestFilterPathGlob(t *testing.T) {
	f := New([]config.IgnoreEntry{{Path: "src/*.php"}})
	match := diag.Diagnostic{Location: diag.Location{Path: "src/Foo.php"}}
	noMatch := diag.Diagnostic{Location: diag.Location{Path: "tests/Foo.php"}}
	res := f.Apply([]diag.Diagnostic{match, noMatch})
	if len(res.Kept) != 1 || res.Kept[0].Location.Path != "tests/Foo.php" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestFilterUnmatchedBudgetReported(t *testing.T) {
	f := New([]config.IgnoreEntry{{Message: "never happens", Count: 3}})
	res := f.Apply(nil)
	if len(res.Unmatched) != 1 {
		t.Fatalf("expected 1 unmatched entry, got %d", len(res.Unmatched))
	}
}

func TestFilterNonIgnorableAlwaysKept(t *testing.T) {
	f := New([]config.IgnoreEntry{{}}) // matches everything
	d := diag.Diagnostic{Identifier: diag.CodeParseError, Message: "syntax error"}
	res := f.Apply([]diag.Diagnostic{d})
	if len(res.Kept) != 1 {
		t.Fatalf("parse errors must never be suppressed, got %+v", res)
	}
}

func TestInlineIgnoreFileSuppressesEverywhere(t *testing.T) {
	src := []byte("<?php\n// phpray-ignore-file\n$a = 1;\n")
	s := ParseInlineSuppressions(src)
	if !s.Suppresses(3, "anything") {
		t.Fatal("expected file-wide suppression to cover line 3")
	}
}

func TestInlineIgnoreNextLine(t *testing.T) {
	src := []byte("<?php\n// phpray-ignore: array_push\n$a[] = 1;\n")
	s := ParseInlineSuppressions(src)
	if !s.Suppresses(3, "array_push") {
		t.Fatal("expected next-line suppression on line 3")
	}
	if s.Suppresses(3, "other_rule") {
		t.Fatal("should not suppress an unnamed rule")
	}
}

func TestInlineIgnoreLineSameLine(t *testing.T) {
	src := []byte("<?php\n$a[] = 1; // phpray-ignore-line\n")
	s := ParseInlineSuppressions(src)
	if !s.Suppresses(2, "whatever") {
		t.Fatal("expected same-line suppression on line 2")
	}
}
