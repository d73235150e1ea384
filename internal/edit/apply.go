package edit

import (
	"fmt"
	"sort"
)

// ConflictError names the first pair of edits whose spans overlap.
type ConflictError struct {
	I, J int // indices into the input slice, I < J
	A, B Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("edit: conflicting edits at indices %d and %d (spans %s, %s)", e.I, e.J, e.A.Span, e.B.Span)
}

// Apply splices edits into source and returns the new text. Edits need not
// be pre-sorted: Apply sorts internally, so the result depends only on the
// (source, edit-set) pair, never on input order (spec §4.1 guarantee 3).
//
// If any two edits have overlapping spans, Apply returns a *ConflictError
// naming the first offending pair (by ascending span start) and leaves
// source untouched — no output is produced on conflict.
func Apply(source []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return source, nil
	}

	order := make([]int, len(edits))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := edits[order[i]], edits[order[j]]
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		return a.Span.End < b.Span.End
	})

	for k := 1; k < len(order); k++ {
		prev, cur := edits[order[k-1]], edits[order[k]]
		if prev.Span.Overlaps(cur.Span) {
			i, j := order[k-1], order[k]
			if i > j {
				i, j = j, i
			}
			return nil, &ConflictError{I: i, J: j, A: edits[i], B: edits[j]}
		}
	}

	outLen := len(source)
	for _, e := range edits {
		outLen += len(e.Replacement) - int(e.Span.Len())
	}
	if outLen < 0 {
		outLen = 0
	}
	out := make([]byte, 0, outLen)

	cursor := uint32(0)
	for _, idx := range order {
		e := edits[idx]
		out = append(out, source[cursor:e.Span.Start]...)
		out = append(out, e.Replacement...)
		cursor = e.Span.End
	}
	out = append(out, source[cursor:]...)
	return out, nil
}

// VerifyParse is the signature of a caller-supplied predicate that
// re-parses a candidate output to detect edits that yielded invalid PHP
// (spec §4.1). The edit engine itself stays parser-agnostic; engine.Run
// re-parses applied output itself (Options.VerifyParse) without this type.
type VerifyParse func(newSource []byte) bool
