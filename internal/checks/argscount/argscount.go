// Package argscount implements the level 0 "arguments.count" check:
// a call to a function declared in the same file with too few or too
// many positional arguments for its parameter list (spec §4.6 L0).
//
// Signature knowledge here is file-local: the frozen project symbol table
// (spec §4.7) records only existence, not parameter lists, so cross-file
// arity checking would need a second, richer index this build does not
// carry. Checking calls against functions declared in the same file still
// covers the common case and keeps the check's contract (pure function of
// one Input) intact.
package argscount

import (
	"fmt"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/phpast"
)

type signature struct {
	min int
	max int // -1 means unbounded (variadic)
}

// Check flags calls whose argument count cannot satisfy a locally
// declared function's parameter list.
type Check struct{}

// New returns the check ready for registration.
func New() Check { return Check{} }

func (Check) Metadata() check.Metadata {
	return check.Metadata{ID: diag.CodeArgumentsCount, Level: check.Level0, Title: "call with the wrong number of arguments"}
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
		n := 0
		hasSpread := false
		for _, a := range call.Args {
			if a.Spread {
				hasSpread = true
			}
			n++
		}
		if hasSpread {
			return true // argument count becomes dynamic; nothing to check
		}
		if n < sig.min || (sig.max >= 0 && n > sig.max) {
			rep.Report(diag.Diagnostic{
				Location:   diag.Location{Path: in.Path, Span: call.Span()},
				Severity:   diag.SevError,
				Identifier: diag.CodeArgumentsCount,
				Message:    fmt.Sprintf("%s() expects %s, %d given", name.String(), expected(sig), n),
			})
		}
		return true
	})
}

func expected(sig signature) string {
	if sig.max < 0 {
		return fmt.Sprintf("at least %d argument(s)", sig.min)
	}
	if sig.min == sig.max {
		return fmt.Sprintf("exactly %d argument(s)", sig.min)
	}
	return fmt.Sprintf("between %d and %d arguments", sig.min, sig.max)
}

func signatureOf(fd *phpast.FuncDecl) signature {
	sig := signature{}
	for _, p := range fd.Params {
		if p.Variadic {
			sig.max = -1
			continue
		}
		sig.max++
		if p.Default == nil {
			sig.min++
		}
	}
	return sig
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
