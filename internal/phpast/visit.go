package phpast

// Visitor is called once per node in pre-order. Returning false prevents
// Walk from descending into that node's children (used by checks that
// already know a subtree can't contain what they're looking for).
type Visitor func(n Node) bool

// Walk performs a pre-order traversal of the tree rooted at n, calling v
// for every statement, expression, and type node it encounters. Rules and
// checks are expected to be pure functions of the nodes they see (spec §9)
// so Walk makes no ordering guarantee beyond pre-order/left-to-right.
func Walk(n Node, v Visitor) {
	if n == nil || !v(n) {
		return
	}
	switch t := n.(type) {
	case *File:
		for _, s := range t.Statements {
			Walk(s, v)
		}
	case *ExprStmt:
		Walk(t.X, v)
	case *EchoStmt:
		for _, e := range t.Exprs {
			Walk(e, v)
		}
	case *ReturnStmt:
		Walk(t.Value, v)
	case *IfStmt:
		Walk(t.Cond, v)
		Walk(t.Then, v)
		for _, ei := range t.ElseIfs {
			Walk(ei.Cond, v)
			Walk(ei.Then, v)
		}
		Walk(t.Else, v)
	case *WhileStmt:
		Walk(t.Cond, v)
		Walk(t.Body, v)
	case *ForeachStmt:
		Walk(t.Expr, v)
		Walk(t.Key, v)
		Walk(t.Value, v)
		Walk(t.Body, v)
	case *BlockStmt:
		for _, s := range t.Stmts {
			Walk(s, v)
		}
	case *FuncDecl:
		for _, p := range t.Params {
			Walk(p.Type, v)
			Walk(p.Default, v)
		}
		Walk(t.ReturnType, v)
		if t.Body != nil {
			Walk(t.Body, v)
		}
	case *ClassDecl:
		for _, p := range t.Properties {
			Walk(p, v)
		}
		for _, m := range t.Methods {
			Walk(m, v)
		}
		for _, c := range t.Consts {
			Walk(c.Value, v)
		}
	case *PropertyDecl:
		Walk(t.Type, v)
		Walk(t.Default, v)
	case *ThrowStmt:
		Walk(t.Value, v)
	case *GlobalStmt, *BreakStmt, *ContinueStmt, *NopStmt:
		// leaves
	case *Binary:
		Walk(t.Left, v)
		Walk(t.Right, v)
	case *Unary:
		Walk(t.Operand, v)
	case *Assign:
		Walk(t.Lhs, v)
		Walk(t.Rhs, v)
	case *Ternary:
		Walk(t.Cond, v)
		Walk(t.Then, v)
		Walk(t.Else, v)
	case *Isset:
		for _, e := range t.Exprs {
			Walk(e, v)
		}
	case *InstanceOf:
		Walk(t.Expr, v)
		Walk(t.Class, v)
	case *Call:
		Walk(t.Callee, v)
		for _, a := range t.Args {
			Walk(a.Value, v)
		}
	case *MethodCall:
		Walk(t.Object, v)
		for _, a := range t.Args {
			Walk(a.Value, v)
		}
	case *StaticCall:
		Walk(t.Class, v)
		for _, a := range t.Args {
			Walk(a.Value, v)
		}
	case *PropertyFetch:
		Walk(t.Object, v)
	case *NullsafePropertyFetch:
		Walk(t.Object, v)
	case *StaticPropertyFetch:
		Walk(t.Class, v)
	case *ClassConstFetch:
		Walk(t.Class, v)
	case *New:
		Walk(t.Class, v)
		for _, a := range t.Args {
			Walk(a.Value, v)
		}
	case *Index:
		Walk(t.Array, v)
		Walk(t.Key, v)
	case *ArrayLit:
		for _, it := range t.Items {
			Walk(it.Key, v)
			Walk(it.Value, v)
		}
	case *NullableType:
		Walk(t.Inner, v)
	case *UnionType:
		for _, m := range t.Members {
			Walk(m, v)
		}
	case *IntersectionType:
		for _, m := range t.Members {
			Walk(m, v)
		}
	case *SimpleType, *Variable, *IntLit, *FloatLit, *StringLit, *BoolLit, *NullLit, *Name:
		// leaves
	}
}
