package phpast

import "github.com/phpray/phpray/internal/source"

func (*Variable) exprNode()             {}
func (*IntLit) exprNode()               {}
func (*FloatLit) exprNode()             {}
func (*StringLit) exprNode()            {}
func (*BoolLit) exprNode()              {}
func (*NullLit) exprNode()              {}
func (*ArrayLit) exprNode()             {}
func (*Binary) exprNode()               {}
func (*Unary) exprNode()                {}
func (*Assign) exprNode()               {}
func (*Ternary) exprNode()              {}
func (*Isset) exprNode()                {}
func (*InstanceOf) exprNode()           {}
func (*Call) exprNode()                 {}
func (*MethodCall) exprNode()           {}
func (*StaticCall) exprNode()           {}
func (*PropertyFetch) exprNode()        {}
func (*NullsafePropertyFetch) exprNode() {}
func (*StaticPropertyFetch) exprNode()  {}
func (*ClassConstFetch) exprNode()      {}
func (*New) exprNode()                  {}
func (*Name) exprNode()                 {}
func (*Index) exprNode()                {}

// Variable is a `$name` reference.
type Variable struct {
	Span_ source.Span
	Name  string
}

func (n *Variable) Span() source.Span { return n.Span_ }

// IntLit is an integer literal; Text preserves the original lexeme
// (decimal, hex, octal, or underscore-separated) so fixes can reproduce it.
type IntLit struct {
	Span_ source.Span
	Text  string
	Value int64
}

func (n *IntLit) Span() source.Span { return n.Span_ }

type FloatLit struct {
	Span_ source.Span
	Text  string
	Value float64
}

func (n *FloatLit) Span() source.Span { return n.Span_ }

// StringLit covers both single- and double-quoted strings. Interpolation
// is not decomposed into sub-expressions; Raw keeps the literal bytes
// between (and including) the quotes.
type StringLit struct {
	Span_ source.Span
	Raw   string
	Value string
}

func (n *StringLit) Span() source.Span { return n.Span_ }

type BoolLit struct {
	Span_ source.Span
	Value bool
}

func (n *BoolLit) Span() source.Span { return n.Span_ }

type NullLit struct {
	Span_ source.Span
}

func (n *NullLit) Span() source.Span { return n.Span_ }

// ArrayLit is `[...]` or `array(...)`; each element may carry a Key.
type ArrayLit struct {
	Span_ source.Span
	Items []ArrayItem
}

func (n *ArrayLit) Span() source.Span { return n.Span_ }

type ArrayItem struct {
	Span_   source.Span
	Key     Expr // nil for list-style items
	Value   Expr
	Spread  bool
	ByRef   bool
}

func (n ArrayItem) Span() source.Span { return n.Span_ }

// Binary is any `a OP b` expression; Op is the literal operator token
// (`+`, `??`, `&&`, `instanceof` is its own node, `.` for concatenation).
type Binary struct {
	Span_ source.Span
	Op    string
	Left  Expr
	Right Expr
}

func (n *Binary) Span() source.Span { return n.Span_ }

type Unary struct {
	Span_   source.Span
	Op      string
	Prefix  bool
	Operand Expr
}

func (n *Unary) Span() source.Span { return n.Span_ }

// Assign is `lhs OP= rhs`; Op is "=" for a plain assignment or the compound
// operator ("+=", ".=", "??=", ...) without the trailing "=".
type Assign struct {
	Span_ source.Span
	Op    string
	Lhs   Expr
	Rhs   Expr
	ByRef bool
}

func (n *Assign) Span() source.Span { return n.Span_ }

// Ternary is `cond ? then : else`; Then is nil for the Elvis form `cond ?: else`.
type Ternary struct {
	Span_ source.Span
	Cond  Expr
	Then  Expr
	Else  Expr
}

func (n *Ternary) Span() source.Span { return n.Span_ }

// Isset is `isset(a, b, ...)`; Exprs holds one or more arguments.
type Isset struct {
	Span_ source.Span
	Exprs []Expr
}

func (n *Isset) Span() source.Span { return n.Span_ }

type InstanceOf struct {
	Span_ source.Span
	Expr  Expr
	Class Expr
}

func (n *InstanceOf) Span() source.Span { return n.Span_ }

// Call is a plain function call `name(args)`; Callee is usually a *Name but
// may be any expression for dynamic calls (`$fn(...)`).
type Call struct {
	Span_  source.Span
	Callee Expr
	Args   []Arg
}

func (n *Call) Span() source.Span { return n.Span_ }

type Arg struct {
	Span_ source.Span
	Name  string // named argument, "" if positional
	Value Expr
	Spread bool
}

func (a Arg) Span() source.Span { return a.Span_ }

// MethodCall is `obj->method(args)`.
type MethodCall struct {
	Span_    source.Span
	Object   Expr
	Method   string
	Nullsafe bool
	Args     []Arg
}

func (n *MethodCall) Span() source.Span { return n.Span_ }

// StaticCall is `Class::method(args)`.
type StaticCall struct {
	Span_  source.Span
	Class  Expr
	Method string
	Args   []Arg
}

func (n *StaticCall) Span() source.Span { return n.Span_ }

// PropertyFetch is `obj->prop`.
type PropertyFetch struct {
	Span_    source.Span
	Object   Expr
	Property string
}

func (n *PropertyFetch) Span() source.Span { return n.Span_ }

// NullsafePropertyFetch is `obj?->prop`; kept distinct from PropertyFetch
// so the nullable-narrowing checks (spec §4.6) can tell them apart without
// re-inspecting source text.
type NullsafePropertyFetch struct {
	Span_    source.Span
	Object   Expr
	Property string
}

func (n *NullsafePropertyFetch) Span() source.Span { return n.Span_ }

// StaticPropertyFetch is `Class::$prop`.
type StaticPropertyFetch struct {
	Span_    source.Span
	Class    Expr
	Property string
}

func (n *StaticPropertyFetch) Span() source.Span { return n.Span_ }

// ClassConstFetch is `Class::CONST` or `Class::class`.
type ClassConstFetch struct {
	Span_ source.Span
	Class Expr
	Const string
}

func (n *ClassConstFetch) Span() source.Span { return n.Span_ }

// New is `new Class(args)`.
type New struct {
	Span_ source.Span
	Class Expr
	Args  []Arg
}

func (n *New) Span() source.Span { return n.Span_ }

// Name is a (possibly qualified) identifier used as a function, class, or
// constant reference: `strlen`, `\App\Foo`, `self`, `static`, `parent`.
type Name struct {
	Span_     source.Span
	Parts     []string
	Qualified bool // leading backslash
}

func (n *Name) Span() source.Span { return n.Span_ }

// String renders the dotted/backslash-joined name as written.
func (n *Name) String() string {
	s := ""
	if n.Qualified {
		s = "\\"
	}
	for i, p := range n.Parts {
		if i > 0 {
			s += "\\"
		}
		s += p
	}
	return s
}

// Index is `arr[key]`; Key is nil for the append form `arr[]`.
type Index struct {
	Span_ source.Span
	Array Expr
	Key   Expr
}

func (n *Index) Span() source.Span { return n.Span_ }
