// Package vardef implements the level 1 variable-definedness check (spec
// §4.6 L1): every `$var` read is classified, via per-function control
// flow, as definitely defined, possibly defined, or undefined.
package vardef

import (
	"fmt"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/phpast"
)

// status is a variable's definedness at a point in the walk.
type status int

const (
	absent status = iota
	possible
	definite
)

// state is a snapshot of every variable's definedness; it is copied (not
// shared) across sibling branches so narrowing learned in one branch never
// leaks into another, matching the purity contract spec §9 requires.
type state map[string]status

func (s state) clone() state {
	out := make(state, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func (s state) set(name string, st status) {
	if cur, ok := s[name]; !ok || st > cur {
		s[name] = st
	}
}

// Check flags reads of variables that aren't defined on every path
// leading to them.
type Check struct{}

// New returns the check ready for registration.
func New() Check { return Check{} }

func (Check) Metadata() check.Metadata {
	return check.Metadata{ID: diag.CodeVariablePossiblyUndefined, Level: check.Level1, Title: "possibly undefined variable"}
}

func (c Check) Run(in check.Input, rep diag.Reporter) {
	for _, stmt := range in.File.Statements {
		if fd, ok := stmt.(*phpast.FuncDecl); ok && fd.Body != nil {
			walkFunc(fd, in.Path, rep)
		}
	}
}

func walkFunc(fd *phpast.FuncDecl, path string, rep diag.Reporter) {
	s := make(state)
	for _, p := range fd.Params {
		s.set(p.Name, definite)
	}
	analyzeBlock(fd.Body.Stmts, s, path, rep)
}

// analyzeBlock walks stmts in order, mutating s in place to reflect the
// definedness state after the block completes.
func analyzeBlock(stmts []phpast.Stmt, s state, path string, rep diag.Reporter) {
	for _, stmt := range stmts {
		analyzeStmt(stmt, s, path, rep)
	}
}

func analyzeStmt(stmt phpast.Stmt, s state, path string, rep diag.Reporter) {
	switch st := stmt.(type) {
	case *phpast.ExprStmt:
		analyzeExpr(st.X, s, path, rep)
	case *phpast.EchoStmt:
		for _, e := range st.Exprs {
			analyzeExpr(e, s, path, rep)
		}
	case *phpast.ReturnStmt:
		if st.Value != nil {
			analyzeExpr(st.Value, s, path, rep)
		}
	case *phpast.ThrowStmt:
		analyzeExpr(st.Value, s, path, rep)
	case *phpast.BlockStmt:
		analyzeBlock(st.Stmts, s, path, rep)
	case *phpast.GlobalStmt:
		for _, n := range st.Names {
			s.set(n, definite)
		}
	case *phpast.IfStmt:
		analyzeIf(st, s, path, rep)
	case *phpast.WhileStmt:
		analyzeExpr(st.Cond, s, path, rep)
		loop := s.clone()
		analyzeStmt(st.Body, loop, path, rep)
		mergeLoopBack(s, loop)
	case *phpast.ForeachStmt:
		analyzeExpr(st.Expr, s, path, rep)
		loop := s.clone()
		bindVar(st.Key, loop)
		bindVar(st.Value, loop)
		analyzeStmt(st.Body, loop, path, rep)
		mergeLoopBack(s, loop)
	default:
		// BreakStmt, ContinueStmt, NopStmt, ClassDecl (nested): nothing to do.
	}
}

// bindVar marks e's variable (if it is one) as defined inside a foreach
// loop's body state; PHP always binds foreach's key/value on each
// iteration that runs.
func bindVar(e phpast.Expr, s state) {
	if v, ok := e.(*phpast.Variable); ok {
		s.set(v.Name, definite)
	}
}

// mergeLoopBack folds a loop body's state back into the enclosing state as
// "possible": the loop may run zero times, so nothing it defines is
// guaranteed, but it may run at least once, so nothing it defines should
// be reported as wholly undefined either.
func mergeLoopBack(outer, loop state) {
	for name, st := range loop {
		if st >= possible {
			outer.set(name, possible)
		}
	}
}

// analyzeIf implements the isset()-narrowing and early-return special
// cases spec §4.6 names for L1.
func analyzeIf(st *phpast.IfStmt, s state, path string, rep diag.Reporter) {
	analyzeExpr(st.Cond, s, path, rep)

	thenState := s.clone()
	applyIssetNarrowing(st.Cond, thenState, true)
	analyzeStmt(st.Then, thenState, path, rep)

	if len(st.ElseIfs) == 0 && st.Else == nil {
		if terminatesFlow(st.Then) {
			// Early-return pattern: the guard's negation holds for every
			// statement following this if.
			applyIssetNarrowing(st.Cond, s, false)
			return
		}
		mergeInto(s, thenState)
		return
	}

	var branches []state
	branches = append(branches, thenState)
	for _, ei := range st.ElseIfs {
		analyzeExpr(ei.Cond, s, path, rep)
		b := s.clone()
		analyzeStmt(ei.Then, b, path, rep)
		branches = append(branches, b)
	}
	if st.Else != nil {
		b := s.clone()
		applyIssetNarrowing(st.Cond, b, false)
		analyzeStmt(st.Else, b, path, rep)
		branches = append(branches, b)
	} else {
		branches = append(branches, s.clone())
	}
	merged := mergeAll(branches)
	for k, v := range merged {
		s[k] = v
	}
}

// terminatesFlow reports whether stmt unconditionally exits its block
// (return/throw/break/continue), the pattern spec §4.6 calls out for early-return
// narrowing.
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

// applyIssetNarrowing special-cases `isset($x)` as an if-condition: inside
// the true branch $x is definitely defined; the false branch gets no
// extra information from this rule alone.
func applyIssetNarrowing(cond phpast.Expr, s state, trueBranch bool) {
	isset, ok := cond.(*phpast.Isset)
	if !ok || !trueBranch {
		return
	}
	for _, e := range isset.Exprs {
		if v, ok := e.(*phpast.Variable); ok {
			s.set(v.Name, definite)
		}
	}
}

// mergeInto folds a single then-branch (no else) back into s as
// "possible": whatever that branch defined might not have run.
func mergeInto(s, thenState state) {
	for name, st := range thenState {
		if st >= possible {
			s.set(name, possible)
		}
	}
}

// mergeAll combines every branch of an if/elseif/.../else chain: a
// variable is definite only if every branch defines it definitely,
// possible if any branch defines it at all.
func mergeAll(branches []state) state {
	out := make(state)
	names := make(map[string]bool)
	for _, b := range branches {
		for n := range b {
			names[n] = true
		}
	}
	for n := range names {
		allDefinite := true
		any := false
		for _, b := range branches {
			st := b[n]
			if st >= possible {
				any = true
			}
			if st != definite {
				allDefinite = false
			}
		}
		switch {
		case allDefinite:
			out[n] = definite
		case any:
			out[n] = possible
		}
	}
	return out
}

var superglobals = map[string]bool{
	"this": true, "GLOBALS": true, "_GET": true, "_POST": true, "_SERVER": true,
	"_SESSION": true, "_COOKIE": true, "_REQUEST": true, "_FILES": true,
	"_ENV": true, "argv": true, "argc": true,
}

func analyzeExpr(e phpast.Expr, s state, path string, rep diag.Reporter) {
	switch v := e.(type) {
	case nil:
	case *phpast.Variable:
		checkRead(v, s, path, rep)
	case *phpast.Assign:
		analyzeExpr(v.Rhs, s, path, rep)
		if lhs, ok := v.Lhs.(*phpast.Variable); ok {
			s.set(lhs.Name, definite)
		} else {
			analyzeExpr(v.Lhs, s, path, rep)
		}
	case *phpast.Binary:
		analyzeExpr(v.Left, s, path, rep)
		analyzeExpr(v.Right, s, path, rep)
	case *phpast.Unary:
		analyzeExpr(v.Operand, s, path, rep)
	case *phpast.Ternary:
		analyzeExpr(v.Cond, s, path, rep)
		analyzeExpr(v.Then, s, path, rep)
		analyzeExpr(v.Else, s, path, rep)
	case *phpast.Isset:
		for _, x := range v.Exprs {
			if vv, ok := x.(*phpast.Variable); ok {
				_ = vv // isset() itself never reads-as-undefined
				continue
			}
			analyzeExpr(x, s, path, rep)
		}
	case *phpast.InstanceOf:
		analyzeExpr(v.Expr, s, path, rep)
		analyzeExpr(v.Class, s, path, rep)
	case *phpast.Call:
		analyzeExpr(v.Callee, s, path, rep)
		for _, a := range v.Args {
			analyzeExpr(a.Value, s, path, rep)
		}
	case *phpast.MethodCall:
		analyzeExpr(v.Object, s, path, rep)
		for _, a := range v.Args {
			analyzeExpr(a.Value, s, path, rep)
		}
	case *phpast.StaticCall:
		for _, a := range v.Args {
			analyzeExpr(a.Value, s, path, rep)
		}
	case *phpast.PropertyFetch:
		analyzeExpr(v.Object, s, path, rep)
	case *phpast.NullsafePropertyFetch:
		analyzeExpr(v.Object, s, path, rep)
	case *phpast.New:
		for _, a := range v.Args {
			analyzeExpr(a.Value, s, path, rep)
		}
	case *phpast.Index:
		analyzeExpr(v.Array, s, path, rep)
		analyzeExpr(v.Key, s, path, rep)
	case *phpast.ArrayLit:
		for _, it := range v.Items {
			analyzeExpr(it.Key, s, path, rep)
			analyzeExpr(it.Value, s, path, rep)
		}
	default:
		// literals, Name, StaticPropertyFetch, ClassConstFetch: no $var reads.
	}
}

func checkRead(v *phpast.Variable, s state, path string, rep diag.Reporter) {
	if superglobals[v.Name] {
		return
	}
	switch s[v.Name] {
	case definite:
		return
	case possible:
		rep.Report(diag.Diagnostic{
			Location:   diag.Location{Path: path, Span: v.Span()},
			Severity:   diag.SevWarning,
			Identifier: diag.CodeVariablePossiblyUndefined,
			Message:    fmt.Sprintf("variable $%s might not be defined on every path", v.Name),
		})
	default:
		rep.Report(diag.Diagnostic{
			Location:   diag.Location{Path: path, Span: v.Span()},
			Severity:   diag.SevError,
			Identifier: diag.CodeVariableUndefined,
			Message:    fmt.Sprintf("variable $%s is undefined", v.Name),
		})
	}
}
