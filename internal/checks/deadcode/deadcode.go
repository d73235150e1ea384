// Package deadcode implements the level 4 checks: deadCode.unreachable
// (a statement that can never execute because the one before it always
// exits the enclosing block) and instanceof.alwaysFalse (an instanceof
// test against a class unrelated to the operand's declared type) (spec
// §4.6 L4).
package deadcode

import (
	"fmt"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/phpast"
)

// Check flags unreachable statements and instanceof tests that can never
// succeed.
type Check struct{}

// New returns the check ready for registration.
func New() Check { return Check{} }

func (Check) Metadata() check.Metadata {
	return check.Metadata{ID: diag.CodeDeadCodeUnreachable, Level: check.Level4, Title: "unreachable code and impossible instanceof checks"}
}

func (Check) Run(in check.Input, rep diag.Reporter) {
	for _, stmt := range in.File.Statements {
		switch s := stmt.(type) {
		case *phpast.FuncDecl:
			checkFunc(in, s, rep)
		case *phpast.ClassDecl:
			for _, m := range s.Methods {
				checkFunc(in, m, rep)
			}
		}
	}
}

func checkFunc(in check.Input, fd *phpast.FuncDecl, rep diag.Reporter) {
	if fd.Body == nil {
		return
	}
	checkBlock(in, fd.Body.Stmts, rep)
	checkParamInstanceof(in, fd, rep)
}

// checkBlock walks every nested block looking for a statement that
// unconditionally terminates control flow with more statements after it.
func checkBlock(in check.Input, stmts []phpast.Stmt, rep diag.Reporter) {
	for i, stmt := range stmts {
		if i > 0 && terminates(stmts[i-1]) {
			rep.Report(diag.Diagnostic{
				Location:   diag.Location{Path: in.Path, Span: stmt.Span()},
				Severity:   diag.SevWarning,
				Identifier: diag.CodeDeadCodeUnreachable,
				Message:    "unreachable statement: the previous statement always returns, throws, breaks, or continues",
			})
			break // everything after the first flagged statement is also dead; one diagnostic per block is enough
		}
		descendInto(in, stmt, rep)
	}
}

func descendInto(in check.Input, stmt phpast.Stmt, rep diag.Reporter) {
	switch s := stmt.(type) {
	case *phpast.BlockStmt:
		checkBlock(in, s.Stmts, rep)
	case *phpast.IfStmt:
		descendInto(in, s.Then, rep)
		for _, ei := range s.ElseIfs {
			descendInto(in, ei.Then, rep)
		}
		if s.Else != nil {
			descendInto(in, s.Else, rep)
		}
	case *phpast.WhileStmt:
		descendInto(in, s.Body, rep)
	case *phpast.ForeachStmt:
		descendInto(in, s.Body, rep)
	}
}

// terminates reports whether stmt unconditionally exits the block it's in.
func terminates(stmt phpast.Stmt) bool {
	switch st := stmt.(type) {
	case *phpast.ReturnStmt, *phpast.ThrowStmt, *phpast.BreakStmt, *phpast.ContinueStmt:
		return true
	case *phpast.BlockStmt:
		if len(st.Stmts) == 0 {
			return false
		}
		return terminates(st.Stmts[len(st.Stmts)-1])
	default:
		return false
	}
}

// checkParamInstanceof flags `$param instanceof Other` where param is
// declared with a concrete class type unrelated to Other in either
// direction up the known extends chain.
func checkParamInstanceof(in check.Input, fd *phpast.FuncDecl, rep diag.Reporter) {
	declared := map[string]string{}
	for _, p := range fd.Params {
		if st, ok := p.Type.(*phpast.SimpleType); ok && st.Name != nil && len(st.Name.Parts) == 1 {
			declared[p.Name] = st.Name.Parts[0]
		}
	}
	if len(declared) == 0 {
		return
	}
	phpast.Walk(fd.Body, func(n phpast.Node) bool {
		io, ok := n.(*phpast.InstanceOf)
		if !ok {
			return true
		}
		v, ok := io.Expr.(*phpast.Variable)
		if !ok {
			return true
		}
		declType, ok := declared[v.Name]
		if !ok {
			return true
		}
		name, ok := io.Class.(*phpast.Name)
		if !ok || len(name.Parts) != 1 {
			return true
		}
		target := name.Parts[0]
		if isPseudoType(declType) || isPseudoType(target) {
			return true
		}
		if !in.Symbols.HasClass(declType) || !in.Symbols.HasClass(target) {
			return true // unknown to the project; too risky to call it impossible
		}
		if in.Symbols.IsSubclassOf(declType, target) || in.Symbols.IsSubclassOf(target, declType) {
			return true
		}
		rep.Report(diag.Diagnostic{
			Location:   diag.Location{Path: in.Path, Span: io.Span()},
			Severity:   diag.SevWarning,
			Identifier: diag.CodeInstanceofAlwaysFalse,
			Message:    fmt.Sprintf("$%s is declared as %s, which is unrelated to %s: this instanceof check is always false", v.Name, declType, target),
		})
		return true
	})
}

func isPseudoType(name string) bool {
	switch lower(name) {
	case "self", "static", "parent", "mixed", "object":
		return true
	default:
		return false
	}
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
