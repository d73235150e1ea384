package source

import (
	"path/filepath"
	"sort"
	"unicode/utf8"
)

// normalizeCRLF rewrites "\r\n" to "\n", leaving lone "\r" untouched.
func normalizeCRLF(content []byte) ([]byte, bool) {
	hasCR := false
	for _, b := range content {
		if b == '\r' {
			hasCR = true
			break
		}
	}
	if !hasCR {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false
	for i := 0; i < len(content); i++ {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i++
			changed = true
			continue
		}
		out = append(out, content[i])
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

// buildLineIndex records the byte offset of every '\n' in content, ascending.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 64)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// toLineCol converts a byte offset into a 1-based (line, column) pair.
// The column is counted in runes, matching the convention most PHP tooling
// uses for on-screen positions (byte offsets stay the canonical span unit).
func toLineCol(content []byte, lineIdx []uint32, off uint32) LineCol {
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: runeColumn(content, 0, off)}
	}
	i := sort.Search(len(lineIdx), func(k int) bool { return lineIdx[k] > off })
	if i == 0 {
		return LineCol{Line: 1, Col: runeColumn(content, 0, off)}
	}
	last := lineIdx[i-1]
	if off == last {
		var start uint32
		if i-1 == 0 {
			start = 0
		} else {
			start = lineIdx[i-2] + 1
		}
		return LineCol{Line: uint32(i), Col: runeColumn(content, start, last)}
	}
	start := last + 1
	return LineCol{Line: uint32(i + 1), Col: runeColumn(content, start, off)}
}

// runeColumn counts the runes between [lineStart, off) and returns a 1-based column.
func runeColumn(content []byte, lineStart, off uint32) uint32 {
	if off <= lineStart || int(off) > len(content) {
		return 1
	}
	count := uint32(0)
	i := int(lineStart)
	end := int(off)
	for i < end {
		_, size := utf8.DecodeRune(content[i:])
		if size <= 0 {
			size = 1
		}
		i += size
		count++
	}
	return count + 1
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath returns an absolute, slash-normalized form of path.
func AbsolutePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path, err
	}
	return normalizePath(abs), nil
}

// RelativePath returns path relative to base, falling back to an absolute
// path when a relative form cannot be computed.
func RelativePath(path, base string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path, err
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return normalizePath(absPath), nil
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return normalizePath(absPath), nil
	}
	return normalizePath(rel), nil
}

// BaseName returns the final path element.
func BaseName(path string) string {
	return normalizePath(filepath.Base(path))
}
