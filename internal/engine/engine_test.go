package engine

import (
	"context"
	"testing"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/checks/nullableaccess"
	"github.com/phpray/phpray/internal/checks/returntype"
	"github.com/phpray/phpray/internal/checks/vardef"
	"github.com/phpray/phpray/internal/config"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/edit"
	"github.com/phpray/phpray/internal/ignore"
	"github.com/phpray/phpray/internal/rule"
	"github.com/phpray/phpray/internal/rules/arraypush"
	"github.com/phpray/phpray/internal/rules/issetcoalesce"
	"github.com/phpray/phpray/internal/source"
)

func TestRunAppliesArrayPushRewrite(t *testing.T) {
	fset := source.NewFileSet()
	id := fset.AddVirtual("push.php", []byte(`<?php $a = []; array_push($a, 1);`))

	results, err := Run(context.Background(), []source.FileID{id}, fset,
		[]rule.Rule{arraypush.New()}, nil,
		Options{Apply: true, VerifyParse: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	r := results[0]
	if r.AppliedEdits != 1 {
		t.Fatalf("expected 1 applied edit, got %d", r.AppliedEdits)
	}
	want := `<?php $a = []; $a[] = 1;`
	if string(r.NewSource) != want {
		t.Fatalf("got %q, want %q", r.NewSource, want)
	}
}

func TestRunAppliesIssetCoalesceRewrite(t *testing.T) {
	fset := source.NewFileSet()
	id := fset.AddVirtual("coalesce.php", []byte(`<?php $x = isset($d['k']) ? $d['k'] : 0;`))

	results, err := Run(context.Background(), []source.FileID{id}, fset,
		[]rule.Rule{issetcoalesce.New()}, nil,
		Options{Apply: true, VerifyParse: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := `<?php $x = $d['k'] ?? 0;`
	if string(results[0].NewSource) != want {
		t.Fatalf("got %q, want %q", results[0].NewSource, want)
	}
}

func TestRunProducesLevelGatedDiagnostics(t *testing.T) {
	fset := source.NewFileSet()
	id := fset.AddVirtual("f.php", []byte("<?php function f($c) { if ($c) { $x = 1; } return $x; }\n"))

	checks := []check.Check{vardef.New(), returntype.New(), nullableaccess.New()}
	results, err := Run(context.Background(), []source.FileID{id}, fset, nil, checks,
		Options{Level: check.Level8})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	diags := results[0].Diagnostics
	if len(diags) != 1 || diags[0].Identifier != diag.CodeVariablePossiblyUndefined {
		t.Fatalf("expected a single variable.possiblyUndefined diagnostic, got %+v", diags)
	}
	if diags[0].Location.Line != 1 {
		t.Fatalf("expected line 1, got %d", diags[0].Location.Line)
	}
}

type panickyRule struct{}

func (panickyRule) Metadata() rule.Metadata { return rule.Metadata{ID: "panicky_rule"} }
func (panickyRule) Apply(rule.Input) []edit.Edit { panic("boom") }

func TestRunRecoversFromRulePanic(t *testing.T) {
	fset := source.NewFileSet()
	id := fset.AddVirtual("p.php", []byte(`<?php echo 1;`))

	results, err := Run(context.Background(), []source.FileID{id}, fset,
		[]rule.Rule{panickyRule{}}, nil, Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	diags := results[0].Diagnostics
	if len(diags) != 1 || diags[0].Identifier != diag.CodeRuleInternalError {
		t.Fatalf("expected one rule.internalError diagnostic, got %+v", diags)
	}
}

func TestBaselineFilteringRoundTrip(t *testing.T) {
	two := []diag.Diagnostic{
		{Location: diag.Location{Path: "f.php", Line: 5}, Identifier: diag.CodeVariableUndefined, Message: "variable $x is undefined"},
		{Location: diag.Location{Path: "f.php", Line: 9}, Identifier: diag.CodeVariableUndefined, Message: "variable $x is undefined"},
	}

	full := ignore.New([]config.IgnoreEntry{{Identifier: string(diag.CodeVariableUndefined), Path: "f.php", Count: 2}})
	res := full.Apply(two)
	if len(res.Kept) != 0 {
		t.Fatalf("expected both diagnostics absorbed by count=2, got %+v", res.Kept)
	}

	partial := ignore.New([]config.IgnoreEntry{{Identifier: string(diag.CodeVariableUndefined), Path: "f.php", Count: 1}})
	res = partial.Apply(two)
	if len(res.Kept) != 1 || res.Kept[0].Location.Line != 9 {
		t.Fatalf("expected the later occurrence to survive count=1, got %+v", res.Kept)
	}
}
