// Package issetcoalesce implements the "isset_coalesce" rule: the
// pre-7.0 `isset($x) ? $x : $default` idiom is rewritten to the null
// coalescing operator `$x ?? $default` (spec §8 scenario 2).
package issetcoalesce

import (
	"fmt"

	"github.com/phpray/phpray/internal/edit"
	"github.com/phpray/phpray/internal/phpast"
	"github.com/phpray/phpray/internal/rule"
)

// ID is the rule's snake_case identity (spec §6.4).
const ID = "isset_coalesce"

// Rule rewrites `isset($e) ? $e : $default` to `$e ?? $default` when the
// condition and the true branch refer to the identical expression: only
// then is the rewrite behavior-preserving (the coalescing operator also
// suppresses the "possibly undefined" notice isset guards against).
type Rule struct{}

// New returns the rule ready for registration.
func New() Rule { return Rule{} }

func (Rule) Metadata() rule.Metadata {
	return rule.Metadata{
		ID:            ID,
		Summary:       "rewrite isset($e) ? $e : $default to $e ?? $default",
		Categories:    []string{"modernize"},
		Presets:       []string{"recommended", "modernize", "all"},
		MinPHP:        "7.0",
		Applicability: edit.AlwaysSafe,
	}
}

func (r Rule) Apply(in rule.Input) []edit.Edit {
	var edits []edit.Edit
	phpast.Walk(in.File, func(n phpast.Node) bool {
		tern, ok := n.(*phpast.Ternary)
		if !ok || tern.Then == nil {
			return true
		}
		isset, ok := tern.Cond.(*phpast.Isset)
		if !ok || len(isset.Exprs) != 1 {
			return true
		}
		condText := renderExpr(isset.Exprs[0])
		thenText := renderExpr(tern.Then)
		if condText == "" || condText != thenText {
			return true
		}
		elseText := renderExpr(tern.Else)
		if elseText == "" {
			return true
		}
		edits = append(edits, edit.Edit{
			Span:        tern.Span(),
			Replacement: fmt.Sprintf("%s ?? %s", condText, elseText),
			Message:     "isset($e) ? $e : $default is equivalent to $e ?? $default",
			RuleID:      ID,
		})
		return true
	})
	return edits
}

// renderExpr reproduces the expression shapes this rule needs to compare
// for identity and re-emit verbatim; anything else returns "" and the
// ternary is left alone.
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
