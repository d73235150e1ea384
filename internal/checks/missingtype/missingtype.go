// Package missingtype implements the level 6 checks: missingType.parameter,
// missingType.return, and missingType.property (spec §4.6 L6) — each
// flagging a declaration left without a type hint at all, as distinct
// from one declared with an incompatible type (levels 3 and 5 cover
// that).
package missingtype

import (
	"fmt"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/phpast"
)

// Check flags untyped function parameters, untyped return types, and
// untyped properties.
type Check struct{}

// New returns the check ready for registration.
func New() Check { return Check{} }

func (Check) Metadata() check.Metadata {
	return check.Metadata{ID: diag.CodeMissingTypeParameter, Level: check.Level6, Title: "declaration missing a type hint"}
}

func (Check) Run(in check.Input, rep diag.Reporter) {
	for _, stmt := range in.File.Statements {
		switch s := stmt.(type) {
		case *phpast.FuncDecl:
			checkFunc(in, s, rep)
		case *phpast.ClassDecl:
			for _, p := range s.Properties {
				checkProperty(in, s.Name, p, rep)
			}
			for _, m := range s.Methods {
				checkFunc(in, m, rep)
			}
		}
	}
}

func checkFunc(in check.Input, fd *phpast.FuncDecl, rep diag.Reporter) {
	for _, p := range fd.Params {
		if p.Type != nil || p.Promoted != "" {
			continue // promoted params without an explicit type still declare one implicitly from the constructor body in practice; skip rather than guess
		}
		rep.Report(diag.Diagnostic{
			Location:   diag.Location{Path: in.Path, Span: p.Span()},
			Severity:   diag.SevHint,
			Identifier: diag.CodeMissingTypeParameter,
			Message:    fmt.Sprintf("parameter $%s of %s() has no declared type", p.Name, fd.Name),
		})
	}
	if fd.ReturnType == nil && !isCtorOrDtor(fd.Name) {
		rep.Report(diag.Diagnostic{
			Location:   diag.Location{Path: in.Path, Span: fd.Span()},
			Severity:   diag.SevHint,
			Identifier: diag.CodeMissingTypeReturn,
			Message:    fmt.Sprintf("%s() has no declared return type", fd.Name),
		})
	}
}

func checkProperty(in check.Input, class string, p *phpast.PropertyDecl, rep diag.Reporter) {
	if p.Type != nil {
		return
	}
	rep.Report(diag.Diagnostic{
		Location:   diag.Location{Path: in.Path, Span: p.Span()},
		Severity:   diag.SevHint,
		Identifier: diag.CodeMissingTypeProperty,
		Message:    fmt.Sprintf("property %s::$%s has no declared type", class, p.Name),
	})
}

func isCtorOrDtor(name string) bool {
	return lower(name) == "__construct" || lower(name) == "__destruct"
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
