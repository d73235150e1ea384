// Package classexists implements the level 0 class-resolution checks:
// `new`, `Class::method()`, `Class::CONST`, and `instanceof Class` against
// a class the project never declares (spec §4.6 L0): class.notFound,
// staticMethod.notFound, classConstant.notFound.
package classexists

import (
	"fmt"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/phpast"
)

// Check flags references to undeclared classes and to static members an
// otherwise-known class never declares.
type Check struct{}

// New returns the check ready for registration.
func New() Check { return Check{} }

func (Check) Metadata() check.Metadata {
	return check.Metadata{ID: diag.CodeClassNotFound, Level: check.Level0, Title: "reference to an undeclared class"}
}

func (Check) Run(in check.Input, rep diag.Reporter) {
	// Pass 1: every class reference that doesn't depend on "self"/"static"/
	// "parent" resolution can be checked in any context.
	phpast.Walk(in.File, func(n phpast.Node) bool {
		switch v := n.(type) {
		case *phpast.New:
			checkClassName(in, v.Class, "", rep)
		case *phpast.StaticCall:
			checkStaticCall(in, v.Class, v.Method, "", rep)
		case *phpast.ClassConstFetch:
			checkClassConst(in, v.Class, v.Const, "", rep)
		case *phpast.InstanceOf:
			checkClassName(in, v.Class, "", rep)
		}
		return true
	})

	// Pass 2: inside a class's own methods, "self"/"static" resolve against
	// that class; "parent" is never resolved and is skipped.
	for _, stmt := range in.File.Statements {
		cd, ok := stmt.(*phpast.ClassDecl)
		if !ok {
			continue
		}
		for _, m := range cd.Methods {
			if m.Body == nil {
				continue
			}
			phpast.Walk(m.Body, func(n phpast.Node) bool {
				switch v := n.(type) {
				case *phpast.New:
					checkClassName(in, v.Class, cd.Name, rep)
				case *phpast.StaticCall:
					checkStaticCall(in, v.Class, v.Method, cd.Name, rep)
				case *phpast.ClassConstFetch:
					checkClassConst(in, v.Class, v.Const, cd.Name, rep)
				case *phpast.InstanceOf:
					checkClassName(in, v.Class, cd.Name, rep)
				}
				return true
			})
		}
	}
}

// resolve turns a class reference expression into a concrete class name,
// resolving "self"/"static" to currentClass. ok is false when resolution
// can't proceed ("parent" in any context, "self"/"static" outside a class,
// or a dynamic expression) — callers
// must skip rather than guess, per spec §7's no-speculative-diagnostic rule.
func resolve(e phpast.Expr, currentClass string) (name string, ok bool) {
	n, isName := e.(*phpast.Name)
	if !isName || len(n.Parts) != 1 {
		return "", false
	}
	switch n.Parts[0] {
	case "self", "static":
		if currentClass == "" {
			return "", false
		}
		return currentClass, true
	case "parent":
		return "", false // not resolved: references through parent are not checked
	default:
		return n.String(), true
	}
}

func checkClassName(in check.Input, e phpast.Expr, currentClass string, rep diag.Reporter) {
	name, ok := resolve(e, currentClass)
	if !ok || builtinClasses[lower(name)] {
		return
	}
	if in.Symbols.HasClass(name) {
		return
	}
	rep.Report(diag.Diagnostic{
		Location:   diag.Location{Path: in.Path, Span: e.Span()},
		Severity:   diag.SevError,
		Identifier: diag.CodeClassNotFound,
		Message:    fmt.Sprintf("class %s does not exist", name),
	})
}

func checkStaticCall(in check.Input, classExpr phpast.Expr, method string, currentClass string, rep diag.Reporter) {
	name, ok := resolve(classExpr, currentClass)
	if !ok || builtinClasses[lower(name)] {
		return
	}
	if !in.Symbols.HasClass(name) {
		rep.Report(diag.Diagnostic{
			Location:   diag.Location{Path: in.Path, Span: classExpr.Span()},
			Severity:   diag.SevError,
			Identifier: diag.CodeClassNotFound,
			Message:    fmt.Sprintf("class %s does not exist", name),
		})
		return
	}
	if !in.Symbols.HasMethod(name, method) {
		rep.Report(diag.Diagnostic{
			Location:   diag.Location{Path: in.Path, Span: classExpr.Span()},
			Severity:   diag.SevError,
			Identifier: diag.CodeStaticMethodNotFound,
			Message:    fmt.Sprintf("call to an undefined static method %s::%s()", name, method),
		})
	}
}

func checkClassConst(in check.Input, classExpr phpast.Expr, constName string, currentClass string, rep diag.Reporter) {
	if constName == "class" {
		return // `Foo::class` always resolves to the FQCN string, nothing to look up
	}
	name, ok := resolve(classExpr, currentClass)
	if !ok || builtinClasses[lower(name)] {
		return
	}
	if !in.Symbols.HasClass(name) {
		rep.Report(diag.Diagnostic{
			Location:   diag.Location{Path: in.Path, Span: classExpr.Span()},
			Severity:   diag.SevError,
			Identifier: diag.CodeClassNotFound,
			Message:    fmt.Sprintf("class %s does not exist", name),
		})
		return
	}
	if !in.Symbols.HasClassConstant(name, constName) {
		rep.Report(diag.Diagnostic{
			Location:   diag.Location{Path: in.Path, Span: classExpr.Span()},
			Severity:   diag.SevError,
			Identifier: diag.CodeClassConstantNotFound,
			Message:    fmt.Sprintf("undefined class constant %s::%s", name, constName),
		})
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

// builtinClasses is a deliberately incomplete whitelist of classes/
// interfaces PHP's engine and standard library declare without any source
// this analyzer sees, mirroring functionexists' builtins list.
var builtinClasses = map[string]bool{
	"exception": true, "error": true, "throwable": true, "typeerror": true,
	"valueerror": true, "runtimeexception": true, "logicexception": true,
	"invalidargumentexception": true, "outofrangeexception": true,
	"outofboundsexception": true, "lengthexception": true,
	"domainexception": true, "rangeexception": true, "overflowexception": true,
	"underflowexception": true, "unexpectedvalueexception": true,
	"stdclass": true, "closure": true, "generator": true, "arrayobject": true,
	"arrayiterator": true, "countable": true, "iterator": true,
	"iteratoraggregate": true, "arrayaccess": true, "jsonserializable": true,
	"stringable": true, "traversable": true, "datetime": true,
	"datetimeimmutable": true, "dateinterval": true, "datetimezone": true,
	"weakmap": true, "weakreference": true, "splstack": true, "splqueue": true,
	"splobjectstorage": true, "self": true, "static": true, "parent": true,
}
