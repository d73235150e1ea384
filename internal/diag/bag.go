package diag

import (
	"fmt"
	"sort"
)

// Bag holds one file's (or one run's) diagnostics, capped at a configured
// maximum so a pathological file cannot exhaust memory (spec §5 memory
// model: peak memory bounded per work unit).
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates a Bag accepting up to maximum diagnostics; maximum <= 0
// means unbounded.
func NewBag(maximum int) *Bag {
	return &Bag{max: maximum}
}

// Add appends d, returning false if the bag's capacity is already reached.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Len returns the number of diagnostics currently held.
func (b *Bag) Len() int { return len(b.items) }

// Items returns the bag's diagnostics. Callers must not mutate the backing
// array; copy first if transformation in place is needed.
func (b *Bag) Items() []Diagnostic { return b.items }

// HasErrors reports whether any diagnostic has at least SevError severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// Merge appends other's diagnostics into b, raising b's cap if needed so
// nothing is dropped during a reduction-phase merge (spec §5 phase 4).
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	total := len(b.items) + len(other.items)
	if b.max > 0 && total > b.max {
		b.max = total
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by (path, span.start, identifier), the canonical
// order spec §5 requires so runs are reproducible regardless of worker
// scheduling.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Location.Path != dj.Location.Path {
			return di.Location.Path < dj.Location.Path
		}
		if di.Location.Span.Start != dj.Location.Span.Start {
			return di.Location.Span.Start < dj.Location.Span.Start
		}
		return di.Identifier < dj.Identifier
	})
}

// Filter keeps only diagnostics for which keep returns true.
func (b *Bag) Filter(keep func(Diagnostic) bool) {
	out := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		if keep(d) {
			out = append(out, d)
		}
	}
	b.items = out
}

// Dedup drops diagnostics that repeat an earlier (Identifier, Span) pair.
func (b *Bag) Dedup() {
	seen := make(map[string]bool, len(b.items))
	out := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%s@%s", d.Identifier, d.Location.Span)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	b.items = out
}
