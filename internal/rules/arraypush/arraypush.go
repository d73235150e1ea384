// Package arraypush implements the "array_push" rule: a call that pushes a
// single value onto an array is rewritten to the equivalent, faster append
// syntax (spec §8 scenario 1).
package arraypush

import (
	"fmt"

	"github.com/phpray/phpray/internal/edit"
	"github.com/phpray/phpray/internal/phpast"
	"github.com/phpray/phpray/internal/rule"
)

// ID is the rule's snake_case identity (spec §6.4).
const ID = "array_push"

// Rule rewrites `array_push($arr, $value)` to `$arr[] = $value`. Multi-value
// calls (`array_push($arr, $a, $b)`) are left untouched: PHP's append
// syntax only pushes one element at a time, so rewriting would change
// behavior rather than just syntax.
type Rule struct{}

// New returns the rule ready for registration.
func New() Rule { return Rule{} }

func (Rule) Metadata() rule.Metadata {
	return rule.Metadata{
		ID:            ID,
		Summary:       "rewrite single-value array_push(...) calls to $arr[] = ...",
		Categories:    []string{"modernize", "performance"},
		Presets:       []string{"recommended", "performance", "modernize", "all"},
		Applicability: edit.AlwaysSafe,
	}
}

func (r Rule) Apply(in rule.Input) []edit.Edit {
	var edits []edit.Edit
	phpast.Walk(in.File, func(n phpast.Node) bool {
		call, ok := n.(*phpast.Call)
		if !ok || len(call.Args) != 2 {
			return true
		}
		name, ok := call.Callee.(*phpast.Name)
		if !ok || name.String() != "array_push" {
			return true
		}
		if call.Args[0].Spread || call.Args[1].Spread || call.Args[0].Name != "" || call.Args[1].Name != "" {
			return true
		}
		arrText := renderExpr(call.Args[0].Value)
		if arrText == "" {
			return true
		}
		valText := renderExpr(call.Args[1].Value)
		if valText == "" {
			return true
		}
		edits = append(edits, edit.Edit{
			Span:        call.Span(),
			Replacement: fmt.Sprintf("%s[] = %s", arrText, valText),
			Message:     "array_push($arr, $value) is equivalent to $arr[] = $value and avoids a function call",
			RuleID:      ID,
		})
		return true
	})
	return edits
}

// renderExpr reproduces the handful of expression shapes this rule needs to
// re-emit verbatim; anything else returns "" and the call site is left
// alone rather than risk a lossy rewrite.
func renderExpr(e phpast.Expr) string {
	switch v := e.(type) {
	case *phpast.Variable:
		return "$" + v.Name
	case *phpast.IntLit:
		return v.Text
	case *phpast.FloatLit:
		return v.Text
	case *phpast.StringLit:
		return v.Raw
	case *phpast.PropertyFetch:
		obj := renderExpr(v.Object)
		if obj == "" {
			return ""
		}
		return obj + "->" + v.Property
	case *phpast.Index:
		arr := renderExpr(v.Array)
		if arr == "" {
			return ""
		}
		if v.Key == nil {
			return arr + "[]"
		}
		key := renderExpr(v.Key)
		if key == "" {
			return ""
		}
		return arr + "[" + key + "]"
	default:
		return ""
	}
}
