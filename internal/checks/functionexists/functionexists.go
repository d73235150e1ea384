// Package functionexists implements the level 0 "function.notFound" check:
// a call to a plain (non-method) function that is neither declared
// anywhere in the analyzed project nor a recognized builtin (spec §4.6 L0).
package functionexists

import (
	"fmt"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/phpast"
)

// Check flags calls to functions the symbol table has never seen declared.
type Check struct{}

// New returns the check ready for registration.
func New() Check { return Check{} }

func (Check) Metadata() check.Metadata {
	return check.Metadata{ID: diag.CodeFunctionNotFound, Level: check.Level0, Title: "call to an undefined function"}
}

func (Check) Run(in check.Input, rep diag.Reporter) {
	phpast.Walk(in.File, func(n phpast.Node) bool {
		call, ok := n.(*phpast.Call)
		if !ok {
			return true
		}
		name, ok := call.Callee.(*phpast.Name)
		if !ok {
			return true // dynamic callee ($fn(), $obj->method() handled elsewhere)
		}
		fn := name.String()
		if builtins[lower(fn)] || in.Symbols.HasFunction(fn) {
			return true
		}
		rep.Report(diag.Diagnostic{
			Location:   diag.Location{Path: in.Path, Span: name.Span()},
			Severity:   diag.SevError,
			Identifier: diag.CodeFunctionNotFound,
			Message:    fmt.Sprintf("call to an undefined function %s()", fn),
		})
		return true
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

// builtins is a small, deliberately incomplete whitelist of PHP's standard
// library functions commonly seen in code this analyzer processes. A full
// stub index of every extension's functions is out of scope here; a call to
// a library function missing from this list is reported unless the project
// itself declares a function of that name.
var builtins = map[string]bool{
	"isset": true, "empty": true, "unset": true, "array_push": true,
	"array_pop": true, "array_shift": true, "array_unshift": true,
	"array_merge": true, "array_map": true, "array_filter": true,
	"array_reduce": true, "array_keys": true, "array_values": true,
	"array_key_exists": true, "in_array": true, "count": true, "sizeof": true,
	"strlen": true, "str_replace": true, "str_contains": true,
	"str_starts_with": true, "str_ends_with": true, "sprintf": true,
	"printf": true, "implode": true, "explode": true, "trim": true,
	"rtrim": true, "ltrim": true, "strtolower": true, "strtoupper": true,
	"substr": true, "is_int": true, "is_string": true, "is_array": true,
	"is_object": true, "is_null": true, "is_bool": true, "is_float": true,
	"is_numeric": true, "is_callable": true, "gettype": true, "var_dump": true,
	"print_r": true, "json_encode": true, "json_decode": true,
	"intval": true, "floatval": true, "strval": true, "boolval": true,
	"array_combine": true, "array_slice": true, "array_splice": true,
	"preg_match": true, "preg_replace": true, "preg_split": true,
	"func_get_args": true, "call_user_func": true, "call_user_func_array": true,
	"class_exists": true, "function_exists": true, "method_exists": true,
	"property_exists": true, "get_class": true, "spl_object_id": true,
}
