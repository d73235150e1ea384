// Package mixeddiscipline implements the top two strictness levels: level
// 9's mixed.explicitUsage (a parameter declared `mixed`) and level 10's
// mixed.implicitUsage (a parameter left untyped, PHP's implicit mixed)
// (spec §4.6 L9/L10). Splitting the two into separate strictness levels
// lets a project require explicit `mixed` be narrowed before it also
// demands every parameter carry a type at all.
package mixeddiscipline

import (
	"fmt"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/phpast"
)

// ExplicitCheck flags parameters and returns explicitly typed `mixed`.
type ExplicitCheck struct{}

// NewExplicit returns the level 9 check ready for registration.
func NewExplicit() ExplicitCheck { return ExplicitCheck{} }

func (ExplicitCheck) Metadata() check.Metadata {
	return check.Metadata{ID: diag.CodeMixedExplicitUsage, Level: check.Level9, Title: "explicit mixed type"}
}

func (ExplicitCheck) Run(in check.Input, rep diag.Reporter) {
	forEachSignature(in, func(fd *phpast.FuncDecl) {
		for _, p := range fd.Params {
			if isMixed(p.Type) {
				rep.Report(diag.Diagnostic{
					Location:   diag.Location{Path: in.Path, Span: p.Span()},
					Severity:   diag.SevHint,
					Identifier: diag.CodeMixedExplicitUsage,
					Message:    fmt.Sprintf("parameter $%s of %s() is explicitly typed mixed", p.Name, fd.Name),
				})
			}
		}
		if isMixed(fd.ReturnType) {
			rep.Report(diag.Diagnostic{
				Location:   diag.Location{Path: in.Path, Span: fd.Span()},
				Severity:   diag.SevHint,
				Identifier: diag.CodeMixedExplicitUsage,
				Message:    fmt.Sprintf("%s() is explicitly typed to return mixed", fd.Name),
			})
		}
	})
}

// ImplicitCheck flags parameters left without any type hint, PHP's
// implicit-mixed rule.
type ImplicitCheck struct{}

// NewImplicit returns the level 10 check ready for registration.
func NewImplicit() ImplicitCheck { return ImplicitCheck{} }

func (ImplicitCheck) Metadata() check.Metadata {
	return check.Metadata{ID: diag.CodeMixedImplicitUsage, Level: check.Level10, Title: "implicit mixed type"}
}

func (ImplicitCheck) Run(in check.Input, rep diag.Reporter) {
	forEachSignature(in, func(fd *phpast.FuncDecl) {
		for _, p := range fd.Params {
			if p.Type == nil && p.Promoted == "" {
				rep.Report(diag.Diagnostic{
					Location:   diag.Location{Path: in.Path, Span: p.Span()},
					Severity:   diag.SevHint,
					Identifier: diag.CodeMixedImplicitUsage,
					Message:    fmt.Sprintf("parameter $%s of %s() has no type and is implicitly mixed", p.Name, fd.Name),
				})
			}
		}
	})
}

// forEachSignature visits every top-level function and method declaration.
func forEachSignature(in check.Input, visit func(*phpast.FuncDecl)) {
	for _, stmt := range in.File.Statements {
		switch s := stmt.(type) {
		case *phpast.FuncDecl:
			visit(s)
		case *phpast.ClassDecl:
			for _, m := range s.Methods {
				visit(m)
			}
		}
	}
}

func isMixed(t phpast.TypeExpr) bool {
	st, ok := t.(*phpast.SimpleType)
	if !ok || st.Name == nil || len(st.Name.Parts) != 1 {
		return false
	}
	return lower(st.Name.Parts[0]) == "mixed"
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
