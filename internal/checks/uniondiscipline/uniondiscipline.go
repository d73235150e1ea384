// Package uniondiscipline implements the level 7 checks:
// method.notFoundInUnion and property.notFoundInUnion (spec §4.6 L7) — a
// member access on a parameter typed as a union of concrete classes,
// where at least one union member never declares that member.
package uniondiscipline

import (
	"fmt"
	"strings"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/phpast"
)

// Check flags member access on a union-typed parameter when some (but
// not necessarily all) of the union's concrete classes lack that member.
type Check struct{}

// New returns the check ready for registration.
func New() Check { return Check{} }

func (Check) Metadata() check.Metadata {
	return check.Metadata{ID: diag.CodeMethodNotFoundInUnion, Level: check.Level7, Title: "member missing on one arm of a union-typed value"}
}

func (Check) Run(in check.Input, rep diag.Reporter) {
	for _, stmt := range in.File.Statements {
		switch s := stmt.(type) {
		case *phpast.FuncDecl:
			if s.Body != nil {
				walkFunc(in, s, rep)
			}
		case *phpast.ClassDecl:
			for _, m := range s.Methods {
				if m.Body != nil {
					walkFunc(in, m, rep)
				}
			}
		}
	}
}

func walkFunc(in check.Input, fd *phpast.FuncDecl, rep diag.Reporter) {
	unions := map[string][]string{}
	for _, p := range fd.Params {
		if members, ok := classUnion(p.Type); ok {
			unions[p.Name] = members
		}
	}
	if len(unions) == 0 {
		return
	}
	phpast.Walk(fd.Body, func(n phpast.Node) bool {
		switch v := n.(type) {
		case *phpast.MethodCall:
			checkAccess(in, unions, v.Object, v.Method, diag.CodeMethodNotFoundInUnion, "method", rep)
		case *phpast.PropertyFetch:
			checkAccess(in, unions, v.Object, v.Property, diag.CodePropertyNotFoundInUnion, "property", rep)
		}
		return true
	})
}

// classUnion reports the concrete class names of a union type, degrading
// (ok=false) if any member isn't a bare class name — e.g. a union that
// includes a scalar doesn't describe the member-access question this check
// asks. A `null` member is dropped and the remaining members are checked.
func classUnion(t phpast.TypeExpr) ([]string, bool) {
	u, ok := t.(*phpast.UnionType)
	if !ok {
		return nil, false
	}
	var names []string
	for _, m := range u.Members {
		st, ok := m.(*phpast.SimpleType)
		if !ok || st.Name == nil || len(st.Name.Parts) != 1 {
			return nil, false
		}
		name := st.Name.Parts[0]
		if lower(name) == "null" {
			continue // nullability is level 8's concern, not this check's
		}
		switch lower(name) {
		case "int", "float", "string", "bool", "array", "iterable", "callable", "mixed", "object", "false", "true", "void", "never":
			return nil, false
		}
		names = append(names, name)
	}
	if len(names) < 2 {
		return nil, false
	}
	return names, true
}

func checkAccess(in check.Input, unions map[string][]string, obj phpast.Expr, member string, code diag.Code, kind string, rep diag.Reporter) {
	v, ok := obj.(*phpast.Variable)
	if !ok {
		return
	}
	classes, ok := unions[v.Name]
	if !ok {
		return
	}
	var missing []string
	for _, c := range classes {
		found := false
		if kind == "method" {
			found = in.Symbols.HasMethod(c, member)
		} else {
			found = in.Symbols.HasProperty(c, member)
		}
		if !found {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return
	}
	rep.Report(diag.Diagnostic{
		Location:   diag.Location{Path: in.Path, Span: obj.Span()},
		Severity:   diag.SevError,
		Identifier: code,
		Message:    fmt.Sprintf("$%s is typed as %s, but %s doesn't declare %s %s", v.Name, strings.Join(classes, "|"), strings.Join(missing, "|"), kind, member),
	})
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
