package ignore

import (
	"bufio"
	"regexp"
	"strings"
)

// InlineSuppressions records the marker comments spec §4.4 defines for
// suppressing rules/checks directly in source: `phpray-ignore-file`,
// `phpray-ignore` (suppresses the next non-comment line), and
// `phpray-ignore-line` (suppresses the line it appears on). All three
// comment syntaxes PHP supports (`//`, `#`, `/* ... */`) are recognized.
type InlineSuppressions struct {
	fileWide map[string]bool // "" key means "suppress everything"
	perLine  map[int]map[string]bool
}

var markerRe = regexp.MustCompile(`(?://|#|/\*)\s*phpray-ignore(-file|-line)?(?:\s*:\s*([^*]*))?\s*(?:\*/)?\s*$`)

// ParseInlineSuppressions scans source line by line for marker comments and
// builds the suppression table. line numbers are 1-based, matching
// diag.Location.Line.
func ParseInlineSuppressions(source []byte) *InlineSuppressions {
	s := &InlineSuppressions{fileWide: map[string]bool{}, perLine: map[int]map[string]bool{}}
	scanner := bufio.NewScanner(strings.NewReader(string(source)))
	lineNo := 0
	pendingFromPrev := false
	var pendingNames map[string]bool
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		if pendingFromPrev && !isOnlyComment(text) {
			s.addLine(lineNo, pendingNames)
			pendingFromPrev = false
			pendingNames = nil
		}
		m := markerRe.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		kind := m[1]
		names := parseNames(m[2])
		isCommentOnlyLine := isOnlyComment(text)
		switch kind {
		case "-file":
			s.addFile(names)
		case "-line":
			s.addLine(lineNo, names)
		default:
			if isCommentOnlyLine {
				pendingFromPrev = true
				pendingNames = names
			} else {
				s.addLine(lineNo, names)
			}
		}
	}
	return s
}

func isOnlyComment(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "//") || strings.HasPrefix(t, "#") || strings.HasPrefix(t, "/*")
}

func parseNames(raw string) map[string]bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil // nil means "suppress everything"
	}
	out := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		n := strings.TrimSpace(part)
		if n != "" {
			out[n] = true
		}
	}
	return out
}

func (s *InlineSuppressions) addFile(names map[string]bool) {
	if names == nil {
		s.fileWide[""] = true
		return
	}
	for n := range names {
		s.fileWide[n] = true
	}
}

func (s *InlineSuppressions) addLine(line int, names map[string]bool) {
	if s.perLine[line] == nil {
		s.perLine[line] = map[string]bool{}
	}
	if names == nil {
		s.perLine[line][""] = true
		return
	}
	for n := range names {
		s.perLine[line][n] = true
	}
}

// Suppresses reports whether name (a rule ID or diagnostic identifier)
// should be suppressed at the given 1-based line.
func (s *InlineSuppressions) Suppresses(line int, name string) bool {
	if s.fileWide[""] || s.fileWide[name] {
		return true
	}
	if m := s.perLine[line]; m != nil {
		return m[""] || m[name]
	}
	return false
}
