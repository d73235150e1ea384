// Package edit represents, composes, and applies non-overlapping byte-span
// text edits so that the emitted text differs from its input only where
// semantics change (spec §4.1).
package edit

import "github.com/phpray/phpray/internal/source"

// Edit replaces the bytes in Span with Replacement. It is a value object:
// it owns its replacement string and carries the provenance of whoever
// produced it.
//
//   - Insertion: Span.Start == Span.End, Replacement != ""
//   - Deletion:  Span.Start <  Span.End, Replacement == ""
//   - Replace:   Span.Start <  Span.End, Replacement != ""
type Edit struct {
	Span        source.Span
	Replacement string
	Message     string
	RuleID      string
}

// IsInsertion reports whether the edit is a zero-width insertion.
func (e Edit) IsInsertion() bool { return e.Span.Empty() }

// Applicability classifies how confident a rule is that its edit preserves
// behavior, mirroring the reference analyzer's three-tier fix-safety model.
type Applicability int

const (
	// AlwaysSafe edits are behavior-preserving by construction (e.g. a
	// trivially equivalent call rewrite).
	AlwaysSafe Applicability = iota
	// SafeWithHeuristics edits rely on an assumption the engine cannot
	// prove from syntax alone (e.g. no magic `__get` on a property fetch).
	SafeWithHeuristics
	// ManualReview edits change control flow or types enough that a human
	// should confirm intent before they're applied unattended.
	ManualReview
)

func (a Applicability) String() string {
	switch a {
	case AlwaysSafe:
		return "always-safe"
	case SafeWithHeuristics:
		return "safe-with-heuristics"
	case ManualReview:
		return "manual-review"
	default:
		return "unknown"
	}
}
