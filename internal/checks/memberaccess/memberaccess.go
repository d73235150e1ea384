// Package memberaccess implements the level 2 member-resolution checks:
// property.notFound and magic.undefined (spec §4.6 L2). Both apply only to
// `$this->prop` access inside a declared class's own methods, since a
// property fetch on an arbitrary expression can't be resolved against the
// frozen symbol table without a full type-inference pass this build does
// not carry.
package memberaccess

import (
	"fmt"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/phpast"
)

// Check flags `$this->prop` references to a property the enclosing class
// (or its ancestors) never declares.
type Check struct{}

// New returns the check ready for registration.
func New() Check { return Check{} }

func (Check) Metadata() check.Metadata {
	return check.Metadata{ID: diag.CodePropertyNotFound, Level: check.Level2, Title: "access to an undeclared property"}
}

func (Check) Run(in check.Input, rep diag.Reporter) {
	for _, stmt := range in.File.Statements {
		cd, ok := stmt.(*phpast.ClassDecl)
		if !ok {
			continue
		}
		hasMagic := in.Symbols.HasMethod(cd.Name, "__get") || in.Symbols.HasMethod(cd.Name, "__set")
		for _, m := range cd.Methods {
			if m.Body == nil {
				continue
			}
			phpast.Walk(m.Body, func(n phpast.Node) bool {
				pf, ok := n.(*phpast.PropertyFetch)
				if !ok {
					return true
				}
				checkFetch(in, cd.Name, pf, hasMagic, rep)
				return true
			})
		}
	}
}

func checkFetch(in check.Input, class string, pf *phpast.PropertyFetch, hasMagic bool, rep diag.Reporter) {
	v, ok := pf.Object.(*phpast.Variable)
	if !ok || v.Name != "this" {
		return
	}
	if in.Symbols.HasProperty(class, pf.Property) {
		return
	}
	if hasMagic {
		rep.Report(diag.Diagnostic{
			Location:   diag.Location{Path: in.Path, Span: pf.Span()},
			Severity:   diag.SevHint,
			Identifier: diag.CodeMagicUndefined,
			Message:    fmt.Sprintf("access to undeclared property %s::$%s resolves through __get/__set and can't be verified statically", class, pf.Property),
		})
		return
	}
	rep.Report(diag.Diagnostic{
		Location:   diag.Location{Path: in.Path, Span: pf.Span()},
		Severity:   diag.SevError,
		Identifier: diag.CodePropertyNotFound,
		Message:    fmt.Sprintf("access to an undeclared property %s::$%s", class, pf.Property),
	})
}
