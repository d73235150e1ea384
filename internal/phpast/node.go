// Package phpast defines the concrete syntax tree produced by phplex+phpparse.
// Every node carries a byte-accurate source.Span (spec §3.1); nodes are
// allocated once per file and must not outlive the work unit that parsed
// them (spec §3.8).
package phpast

import "github.com/phpray/phpray/internal/source"

// Node is satisfied by every statement, expression, and type-expression
// node. Rules and checks walk the tree through this interface rather than
// a single tagged struct, mirroring the sum-of-node-kinds contract in
// spec §9 ("Visitor & rule polymorphism").
type Node interface {
	Span() source.Span
}

// Stmt is a statement-level node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression-level node.
type Expr interface {
	Node
	exprNode()
}

// TypeExpr is a type annotation: a simple name, nullable type, or union.
type TypeExpr interface {
	Node
	typeNode()
}

// File is the root of a parsed PHP source file.
type File struct {
	Span_      source.Span
	File       source.FileID
	Statements []Stmt
}

func (f *File) Span() source.Span { return f.Span_ }
