// Package returntype implements the level 3 "return.type" check: a
// returned literal expression whose type cannot be assigned to the
// function's declared return type (spec §4.6 L3).
//
// Only literal expressions are classified; anything else degrades to
// "type unknown" and is silently skipped, per spec §7's rule that
// analysis degradations must never produce a speculative diagnostic.
package returntype

import (
	"fmt"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/phpast"
)

// Check flags returned literals incompatible with a declared scalar
// return type.
type Check struct{}

// New returns the check ready for registration.
func New() Check { return Check{} }

func (Check) Metadata() check.Metadata {
	return check.Metadata{ID: diag.CodeReturnType, Level: check.Level3, Title: "return value incompatible with declared return type"}
}

func (Check) Run(in check.Input, rep diag.Reporter) {
	for _, stmt := range in.File.Statements {
		if fd, ok := stmt.(*phpast.FuncDecl); ok && fd.Body != nil {
			walkFunc(fd, in.Path, rep)
		}
	}
}

func walkFunc(fd *phpast.FuncDecl, path string, rep diag.Reporter) {
	declared, ok := scalarName(fd.ReturnType)
	if !ok {
		return
	}
	nullable := phpast.IsNullable(fd.ReturnType)
	phpast.Walk(fd.Body, func(n phpast.Node) bool {
		// don't descend into a nested closure/function's own return type.
		if nested, isFn := n.(*phpast.FuncDecl); isFn && nested != fd {
			return false
		}
		ret, ok := n.(*phpast.ReturnStmt)
		if !ok || ret.Value == nil {
			return true
		}
		actual, ok := literalType(ret.Value)
		if !ok {
			return true
		}
		if compatible(declared, actual) || (actual == "null" && nullable) {
			return true
		}
		rep.Report(diag.Diagnostic{
			Location:   diag.Location{Path: path, Span: ret.Value.Span()},
			Severity:   diag.SevError,
			Identifier: diag.CodeReturnType,
			Message:    fmt.Sprintf("function declared to return %s, but this return statement gives %s", declared, actual),
		})
		return true
	})
}

// scalarName extracts a bare scalar type name from t, unwrapping the
// nullable shorthand; union/intersection types degrade to "unknown"
// since the scalar-literal comparison this check does can't span them.
func scalarName(t phpast.TypeExpr) (string, bool) {
	switch v := t.(type) {
	case *phpast.SimpleType:
		if v.Name == nil || len(v.Name.Parts) != 1 {
			return "", false
		}
		return lower(v.Name.Parts[0]), true
	case *phpast.NullableType:
		return scalarName(v.Inner)
	default:
		return "", false
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

// compatible reports whether a value of actual scalar type may satisfy a
// declared type, honoring PHP's implicit int-to-float widening and a
// handful of pseudo-types that accept anything.
func compatible(declared, actual string) bool {
	if declared == actual {
		return true
	}
	switch declared {
	case "mixed", "void", "never", "self", "static", "parent", "object", "iterable", "callable":
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
