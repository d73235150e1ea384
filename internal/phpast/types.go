package phpast

import "github.com/phpray/phpray/internal/source"

func (*SimpleType) typeNode() {}
func (*NullableType) typeNode() {}
func (*UnionType) typeNode() {}
func (*IntersectionType) typeNode() {}

// SimpleType is a single named type: `int`, `string`, `\App\User`, `self`.
type SimpleType struct {
	Span_ source.Span
	Name  *Name
}

func (n *SimpleType) Span() source.Span { return n.Span_ }

// NullableType is PHP's `?T` shorthand for `T|null`. The narrowing model
// (spec §4.6) treats it identically to a two-member UnionType containing
// a SimpleType member named `null`, but the parser preserves the shorthand so fixes can
// reproduce the original spelling.
type NullableType struct {
	Span_ source.Span
	Inner TypeExpr
}

func (n *NullableType) Span() source.Span { return n.Span_ }

// UnionType is `A|B|...`.
type UnionType struct {
	Span_   source.Span
	Members []TypeExpr
}

func (n *UnionType) Span() source.Span { return n.Span_ }

// IntersectionType is `A&B&...` (PHP 8.1 pure intersection types).
type IntersectionType struct {
	Span_   source.Span
	Members []TypeExpr
}

func (n *IntersectionType) Span() source.Span { return n.Span_ }

// IsNullable reports whether t admits null, either via `?T` or a union
// member literally named "null".
func IsNullable(t TypeExpr) bool {
	switch v := t.(type) {
	case nil:
		return false
	case *NullableType:
		return true
	case *UnionType:
		for _, m := range v.Members {
			if s, ok := m.(*SimpleType); ok && s.Name != nil && len(s.Name.Parts) == 1 && s.Name.Parts[0] == "null" {
				return true
			}
		}
	}
	return false
}
