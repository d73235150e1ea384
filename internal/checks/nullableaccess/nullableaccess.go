// Package nullableaccess implements the level 8 "nullable.access" check:
// member access on a variable whose declared type is nullable, unless the
// access uses `?->` or every path reaching it has already excluded null
// (spec §4.6 L8, the narrow map model).
package nullableaccess

import (
	"fmt"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/narrow"
	"github.com/phpray/phpray/internal/phpast"
)

// Check flags `$x->m`/`$x->p` when $x's static type is nullable and no
// null-check has narrowed it out on every incoming path.
type Check struct{}

// New returns the check ready for registration.
func New() Check { return Check{} }

func (Check) Metadata() check.Metadata {
	return check.Metadata{ID: diag.CodeNullableAccess, Level: check.Level8, Title: "property or method access on a possibly-null value"}
}

func (Check) Run(in check.Input, rep diag.Reporter) {
	for _, stmt := range in.File.Statements {
		if fd, ok := stmt.(*phpast.FuncDecl); ok && fd.Body != nil {
			walkFunc(fd, in.Path, rep)
		}
	}
}

func walkFunc(fd *phpast.FuncDecl, path string, rep diag.Reporter) {
	nullable := map[string]bool{}
	for _, p := range fd.Params {
		if phpast.IsNullable(p.Type) {
			nullable[p.Name] = true
		}
	}
	if len(nullable) == 0 {
		return
	}
	analyzeBlock(fd.Body.Stmts, nullable, narrow.Empty, path, rep)
}

// analyzeBlock walks stmts with nm as the narrowing state in effect at the
// start of the block, threading updates forward (early-return narrowing
// applies to every statement that follows it).
func analyzeBlock(stmts []phpast.Stmt, nullable map[string]bool, nm *narrow.Map, path string, rep diag.Reporter) *narrow.Map {
	for _, stmt := range stmts {
		nm = analyzeStmt(stmt, nullable, nm, path, rep)
	}
	return nm
}

func analyzeStmt(stmt phpast.Stmt, nullable map[string]bool, nm *narrow.Map, path string, rep diag.Reporter) *narrow.Map {
	switch st := stmt.(type) {
	case *phpast.ExprStmt:
		analyzeExpr(st.X, nullable, nm, path, rep)
	case *phpast.EchoStmt:
		for _, e := range st.Exprs {
			analyzeExpr(e, nullable, nm, path, rep)
		}
	case *phpast.ReturnStmt:
		if st.Value != nil {
			analyzeExpr(st.Value, nullable, nm, path, rep)
		}
	case *phpast.ThrowStmt:
		analyzeExpr(st.Value, nullable, nm, path, rep)
	case *phpast.BlockStmt:
		return analyzeBlock(st.Stmts, nullable, nm, path, rep)
	case *phpast.IfStmt:
		return analyzeIf(st, nullable, nm, path, rep)
	case *phpast.WhileStmt:
		analyzeExpr(st.Cond, nullable, nm, path, rep)
		analyzeStmt(st.Body, nullable, nm, path, rep)
	case *phpast.ForeachStmt:
		analyzeExpr(st.Expr, nullable, nm, path, rep)
		analyzeStmt(st.Body, nullable, nm, path, rep)
	}
	return nm
}

func analyzeIf(st *phpast.IfStmt, nullable map[string]bool, nm *narrow.Map, path string, rep diag.Reporter) *narrow.Map {
	analyzeExpr(st.Cond, nullable, nm, path, rep)
	name, trueFact, falseFact, ok := nullCheck(st.Cond)

	thenNM := nm
	if ok {
		thenNM = nm.With(name, trueFact)
	}
	thenAfter := analyzeStmt(st.Then, nullable, thenNM, path, rep)

	if len(st.ElseIfs) == 0 && st.Else == nil {
		if ok && terminatesFlow(st.Then) {
			return nm.With(name, falseFact)
		}
		return nm
	}

	elseNM := nm
	if ok {
		elseNM = nm.With(name, falseFact)
	}
	var elseAfter *narrow.Map
	if st.Else != nil {
		elseAfter = analyzeStmt(st.Else, nullable, elseNM, path, rep)
	} else {
		elseAfter = elseNM
	}
	names := make([]string, 0, len(nullable))
	for n := range nullable {
		names = append(names, n)
	}
	return narrow.Merge(thenAfter, elseAfter, names)
}

// terminatesFlow reports whether stmt unconditionally exits, the
// early-return pattern spec §4.6 names for narrowing propagation.
func terminatesFlow(stmt phpast.Stmt) bool {
	switch st := stmt.(type) {
	case *phpast.ReturnStmt, *phpast.ThrowStmt, *phpast.BreakStmt, *phpast.ContinueStmt:
		return true
	case *phpast.BlockStmt:
		if len(st.Stmts) == 0 {
			return false
		}
		return terminatesFlow(st.Stmts[len(st.Stmts)-1])
	default:
		return false
	}
}

// nullCheck recognizes `$x === null`, `$x !== null`, and their
// argument-order-reversed forms, returning the variable name and which
// narrow.Fact each branch establishes.
func nullCheck(cond phpast.Expr) (name string, trueFact, falseFact narrow.Fact, ok bool) {
	bin, isBin := cond.(*phpast.Binary)
	if !isBin || (bin.Op != "===" && bin.Op != "!==") {
		return "", 0, 0, false
	}
	var v *phpast.Variable
	if vv, isVar := bin.Left.(*phpast.Variable); isVar {
		if _, isNull := bin.Right.(*phpast.NullLit); isNull {
			v = vv
		}
	}
	if v == nil {
		if vv, isVar := bin.Right.(*phpast.Variable); isVar {
			if _, isNull := bin.Left.(*phpast.NullLit); isNull {
				v = vv
			}
		}
	}
	if v == nil {
		return "", 0, 0, false
	}
	if bin.Op == "===" {
		return v.Name, narrow.Null, narrow.NonNull, true
	}
	return v.Name, narrow.NonNull, narrow.Null, true
}

func analyzeExpr(e phpast.Expr, nullable map[string]bool, nm *narrow.Map, path string, rep diag.Reporter) {
	switch v := e.(type) {
	case nil:
	case *phpast.PropertyFetch:
		checkAccess(v.Object, v.Property, nullable, nm, path, rep)
		analyzeExpr(v.Object, nullable, nm, path, rep)
	case *phpast.MethodCall:
		if !v.Nullsafe {
			checkAccess(v.Object, v.Method, nullable, nm, path, rep)
		}
		analyzeExpr(v.Object, nullable, nm, path, rep)
		for _, a := range v.Args {
			analyzeExpr(a.Value, nullable, nm, path, rep)
		}
	case *phpast.NullsafePropertyFetch:
		analyzeExpr(v.Object, nullable, nm, path, rep)
	case *phpast.Binary:
		analyzeExpr(v.Left, nullable, nm, path, rep)
		analyzeExpr(v.Right, nullable, nm, path, rep)
	case *phpast.Unary:
		analyzeExpr(v.Operand, nullable, nm, path, rep)
	case *phpast.Assign:
		analyzeExpr(v.Rhs, nullable, nm, path, rep)
	case *phpast.Ternary:
		analyzeExpr(v.Cond, nullable, nm, path, rep)
		analyzeExpr(v.Then, nullable, nm, path, rep)
		analyzeExpr(v.Else, nullable, nm, path, rep)
	case *phpast.Call:
		for _, a := range v.Args {
			analyzeExpr(a.Value, nullable, nm, path, rep)
		}
	case *phpast.New:
		for _, a := range v.Args {
			analyzeExpr(a.Value, nullable, nm, path, rep)
		}
	case *phpast.Index:
		analyzeExpr(v.Array, nullable, nm, path, rep)
		analyzeExpr(v.Key, nullable, nm, path, rep)
	}
}

func checkAccess(obj phpast.Expr, member string, nullable map[string]bool, nm *narrow.Map, path string, rep diag.Reporter) {
	v, ok := obj.(*phpast.Variable)
	if !ok || !nullable[v.Name] {
		return
	}
	if nm.Lookup(v.Name) == narrow.NonNull {
		return
	}
	rep.Report(diag.Diagnostic{
		Location:   diag.Location{Path: path, Span: obj.Span()},
		Severity:   diag.SevError,
		Identifier: diag.CodeNullableAccess,
		Message:    fmt.Sprintf("accessing ->%s on $%s, whose type admits null, without a prior null check or ?->", member, v.Name),
	})
}
