package phpparse

import (
	"testing"

	"github.com/phpray/phpray/internal/phpast"
)

func parse(t *testing.T, src string) *phpast.File {
	t.Helper()
	p := New(1, []byte(src))
	f := p.Parse()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %+v", p.Errors())
	}
	return f
}

func TestParseSimpleAssignment(t *testing.T) {
	f := parse(t, "<?php $a = 1;")
	if len(f.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(f.Statements))
	}
	es, ok := f.Statements[0].(*phpast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", f.Statements[0])
	}
	assign, ok := es.X.(*phpast.Assign)
	if !ok {
		t.Fatalf("expected Assign, got %T", es.X)
	}
	v, ok := assign.Lhs.(*phpast.Variable)
	if !ok || v.Name != "a" {
		t.Fatalf("expected variable 'a', got %+v", assign.Lhs)
	}
}

func TestParseArrayPushCall(t *testing.T) {
	f := parse(t, "<?php $a = []; array_push($a, 1);")
	call := f.Statements[1].(*phpast.ExprStmt).X.(*phpast.Call)
	name, ok := call.Callee.(*phpast.Name)
	if !ok || name.String() != "array_push" {
		t.Fatalf("expected callee array_push, got %+v", call.Callee)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
}

func TestParseIssetTernaryToCoalesce(t *testing.T) {
	f := parse(t, `<?php $x = isset($a["k"]) ? $a["k"] : "default";`)
	assign := f.Statements[0].(*phpast.ExprStmt).X.(*phpast.Assign)
	ternary, ok := assign.Rhs.(*phpast.Ternary)
	if !ok {
		t.Fatalf("expected Ternary, got %T", assign.Rhs)
	}
	if _, ok := ternary.Cond.(*phpast.Isset); !ok {
		t.Fatalf("expected Isset condition, got %T", ternary.Cond)
	}
}

func TestParseFunctionWithReturnType(t *testing.T) {
	f := parse(t, `<?php function greet(string $name): string { return "hi " . $name; }`)
	fn := f.Statements[0].(*phpast.FuncDecl)
	if fn.Name != "greet" {
		t.Fatalf("expected name greet, got %q", fn.Name)
	}
	if len(fn.Params) != 1 || fn.Params[0].Name != "name" {
		t.Fatalf("unexpected params: %+v", fn.Params)
	}
	st, ok := fn.ReturnType.(*phpast.SimpleType)
	if !ok || st.Name.String() != "string" {
		t.Fatalf("expected return type string, got %+v", fn.ReturnType)
	}
}

func TestParseNullableParamType(t *testing.T) {
	f := parse(t, `<?php function f(?User $u) {}`)
	fn := f.Statements[0].(*phpast.FuncDecl)
	if !phpast.IsNullable(fn.Params[0].Type) {
		t.Fatalf("expected nullable type, got %+v", fn.Params[0].Type)
	}
}

func TestParseClassWithPropertyAndMethod(t *testing.T) {
	f := parse(t, `<?php
class User {
	private ?string $name = null;
	public function getName(): ?string {
		return $this->name;
	}
}`)
	cls := f.Statements[0].(*phpast.ClassDecl)
	if cls.Name != "User" || len(cls.Properties) != 1 || len(cls.Methods) != 1 {
		t.Fatalf("unexpected class shape: %+v", cls)
	}
	if cls.Properties[0].Name != "name" {
		t.Fatalf("unexpected property: %+v", cls.Properties[0])
	}
	if cls.Methods[0].Name != "getName" {
		t.Fatalf("unexpected method: %+v", cls.Methods[0])
	}
}

func TestParseIfElseIfElse(t *testing.T) {
	f := parse(t, `<?php
if ($a) {
	echo 1;
} elseif ($b) {
	echo 2;
} else {
	echo 3;
}`)
	ifs := f.Statements[0].(*phpast.IfStmt)
	if len(ifs.ElseIfs) != 1 || ifs.Else == nil {
		t.Fatalf("unexpected if shape: %+v", ifs)
	}
}

func TestParseNullsafeChain(t *testing.T) {
	f := parse(t, `<?php $x = $user?->address?->city;`)
	assign := f.Statements[0].(*phpast.ExprStmt).X.(*phpast.Assign)
	outer, ok := assign.Rhs.(*phpast.NullsafePropertyFetch)
	if !ok || outer.Property != "city" {
		t.Fatalf("expected outer nullsafe fetch of city, got %+v", assign.Rhs)
	}
	if _, ok := outer.Object.(*phpast.NullsafePropertyFetch); !ok {
		t.Fatalf("expected chained nullsafe fetch, got %+v", outer.Object)
	}
}

func TestParseInstanceofNarrowing(t *testing.T) {
	f := parse(t, `<?php if ($x instanceof User) { echo $x->name; }`)
	ifs := f.Statements[0].(*phpast.IfStmt)
	if _, ok := ifs.Cond.(*phpast.InstanceOf); !ok {
		t.Fatalf("expected InstanceOf condition, got %+v", ifs.Cond)
	}
}

func TestParseNewWithArgs(t *testing.T) {
	f := parse(t, `<?php $u = new User("bob", 42);`)
	assign := f.Statements[0].(*phpast.ExprStmt).X.(*phpast.Assign)
	n, ok := assign.Rhs.(*phpast.New)
	if !ok || len(n.Args) != 2 {
		t.Fatalf("expected New with 2 args, got %+v", assign.Rhs)
	}
}

func TestParseRecoversFromSyntaxError(t *testing.T) {
	p := New(1, []byte("<?php $a = ; $b = 2;"))
	p.Parse()
	if len(p.Errors()) == 0 {
		t.Fatal("expected at least one parse error")
	}
}
