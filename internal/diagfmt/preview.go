package diagfmt

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
)

// truncateGraphemeSafe elides line to at most maxWidth grapheme clusters,
// appending an ellipsis. Cutting by byte or rune count alone can split a
// multi-codepoint emoji or combining-mark sequence in half; PHP source can
// carry either in a string literal or a comment, so the source-context
// preview segments by grapheme cluster (UAX #29) instead.
func truncateGraphemeSafe(line string, maxWidth int) string {
	if maxWidth <= 0 {
		return line
	}

	var clusters []string
	seg := graphemes.NewSegmenter([]byte(line))
	for seg.Next() {
		clusters = append(clusters, string(seg.Bytes()))
	}

	if len(clusters) <= maxWidth {
		return line
	}

	const ellipsis = "…"
	keep := maxWidth - 1
	if keep < 0 {
		keep = 0
	}
	return strings.Join(clusters[:keep], "") + ellipsis
}
