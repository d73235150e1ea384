// Package argumenttype implements the level 5 "argument.type" check: a
// call passing a literal argument whose type cannot satisfy the declared
// scalar type of the parameter it binds to (spec §4.6 L5).
//
// Like argscount, signature knowledge is file-local (the frozen project
// symbol table records existence, not parameter lists), and only literal
// arguments are classified — anything else degrades to "type unknown" and
// is skipped, per spec §7's no-speculative-diagnostic rule.
package argumenttype

import (
	"fmt"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/phpast"
)

type signature struct {
	params []param
}

type param struct {
	name     string
	typeName string // "" if untyped or non-scalar
	nullable bool
	variadic bool
}

// Check flags calls passing a literal value incompatible with the
// declared scalar type of the parameter it binds positionally to.
type Check struct{}

// New returns the check ready for registration.
func New() Check { return Check{} }

func (Check) Metadata() check.Metadata {
	return check.Metadata{ID: diag.CodeArgumentType, Level: check.Level5, Title: "argument incompatible with declared parameter type"}
}

func (Check) Run(in check.Input, rep diag.Reporter) {
	sigs := make(map[string]signature)
	for _, stmt := range in.File.Statements {
		fd, ok := stmt.(*phpast.FuncDecl)
		if !ok || fd.IsMethod {
			continue
		}
		sigs[lower(fd.Name)] = signatureOf(fd)
	}
	if len(sigs) == 0 {
		return
	}
	phpast.Walk(in.File, func(n phpast.Node) bool {
		call, ok := n.(*phpast.Call)
		if !ok {
			return true
		}
		name, ok := call.Callee.(*phpast.Name)
		if !ok {
			return true
		}
		sig, ok := sigs[lower(name.String())]
		if !ok {
			return true
		}
		checkCall(in, name.String(), sig, call.Args, rep)
		return true
	})
}

func checkCall(in check.Input, fnName string, sig signature, args []phpast.Arg, rep diag.Reporter) {
	for i, a := range args {
		if a.Spread || a.Name != "" {
			return // dynamic or named binding; positional mapping below no longer holds
		}
		if i >= len(sig.params) {
			return // argscount's job, not this check's
		}
		p := sig.params[i]
		if p.variadic || p.typeName == "" {
			continue
		}
		actual, ok := literalType(a.Value)
		if !ok {
			continue
		}
		if actual == "null" && p.nullable {
			continue
		}
		if compatible(p.typeName, actual) {
			continue
		}
		rep.Report(diag.Diagnostic{
			Location:   diag.Location{Path: in.Path, Span: a.Value.Span()},
			Severity:   diag.SevError,
			Identifier: diag.CodeArgumentType,
			Message:    fmt.Sprintf("%s() expects parameter $%s of type %s, %s given", fnName, p.name, p.typeName, actual),
		})
	}
}

func signatureOf(fd *phpast.FuncDecl) signature {
	var sig signature
	for _, p := range fd.Params {
		sig.params = append(sig.params, param{
			name:     p.Name,
			typeName: scalarName(p.Type),
			nullable: phpast.IsNullable(p.Type),
			variadic: p.Variadic,
		})
	}
	return sig
}

// scalarName extracts a bare scalar type name, unwrapping the nullable
// shorthand; union/intersection types and untyped params yield "".
func scalarName(t phpast.TypeExpr) string {
	switch v := t.(type) {
	case *phpast.SimpleType:
		if v.Name == nil || len(v.Name.Parts) != 1 {
			return ""
		}
		return lower(v.Name.Parts[0])
	case *phpast.NullableType:
		return scalarName(v.Inner)
	default:
		return ""
	}
}

func literalType(e phpast.Expr) (string, bool) {
	switch e.(type) {
	case *phpast.IntLit:
		return "int", true
	case *phpast.FloatLit:
		return "float", true
	case *phpast.StringLit:
		return "string", true
	case *phpast.BoolLit:
		return "bool", true
	case *phpast.NullLit:
		return "null", true
	case *phpast.ArrayLit:
		return "array", true
	default:
		return "", false
	}
}

// compatible mirrors returntype's rules: exact match, PHP's implicit
// int-to-float widening, and the pseudo-types that accept anything.
func compatible(declared, actual string) bool {
	if declared == actual {
		return true
	}
	switch declared {
	case "mixed", "object", "iterable", "callable":
		return true
	case "float":
		return actual == "int"
	}
	return false
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
