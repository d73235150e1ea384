// Package narrow tracks the nullable/mixed narrowing state of variables and
// expressions as a Check walks a function body (spec §4.6 "Type-narrowing
// model"). The Map is persistent: each branch of an if/else forks a child
// that shares its parent's facts until it overwrites one, so narrowing
// learned in one branch never leaks into a sibling branch.
package narrow

// Fact is what's known about a binding at a point in the walk.
type Fact int

const (
	// Unknown means no narrowing has been established; callers fall back
	// to the binding's declared type.
	Unknown Fact = iota
	// NonNull means an isset()/instanceof/!== null guard proved the
	// binding cannot be null on this path.
	NonNull
	// Null means a path (e.g. the else of an isset() check) proved the
	// binding is exactly null.
	Null
)

// Map is a persistent (path-copying) narrowing environment keyed by
// variable name. Reads walk the parent chain; writes always create a new
// child so an outer Map is unaffected by facts learned in an inner scope.
type Map struct {
	parent *Map
	name   string
	fact   Fact
}

// Empty is the narrowing state with no facts established; the starting
// point for every function body.
var Empty = (*Map)(nil)

// With returns a new Map identical to m except that name now carries fact.
// m itself is unmodified (spec §9 purity requirement extends to narrow
// state: checks must not mutate a Map another goroutine might be reading).
func (m *Map) With(name string, fact Fact) *Map {
	return &Map{parent: m, name: name, fact: fact}
}

// Lookup returns the most recently established fact for name, or Unknown
// if none was ever recorded.
func (m *Map) Lookup(name string) Fact {
	for cur := m; cur != nil; cur = cur.parent {
		if cur.name == name {
			return cur.fact
		}
	}
	return Unknown
}

// Merge combines two Maps produced by sibling branches (e.g. the then/else
// of an if) into the narrowing state valid after the branches rejoin: a
// fact survives only if both branches agree on it, since a fact true in
// only one branch cannot be assumed once control flow merges (spec §4.6).
func Merge(a, b *Map, names []string) *Map {
	out := Empty
	for _, n := range names {
		fa, fb := a.Lookup(n), b.Lookup(n)
		if fa != Unknown && fa == fb {
			out = out.With(n, fa)
		}
	}
	return out
}
