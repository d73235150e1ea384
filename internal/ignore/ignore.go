// Package ignore filters diagnostics against a PHPStan-compatible baseline
// (spec §4.4): an entry suppresses a matching diagnostic up to its count
// budget, after which further matches are reported again so a baseline
// can't silently absorb new occurrences of an error it was meant to freeze.
package ignore

import (
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/phpray/phpray/internal/config"
	"github.com/phpray/phpray/internal/diag"
)

// Entry is a compiled, ready-to-match baseline entry.
type Entry struct {
	source     config.IgnoreEntry
	messageRe  *regexp.Regexp // nil if Message is a plain substring, not a #...# or /.../ regex
	budget     int            // <=0 means unbounded
	mu         sync.Mutex
	matched    int
}

// Filter holds every baseline entry for one run and tracks how many times
// each has matched so far.
type Filter struct {
	entries []*Entry
}

// New compiles entries into a Filter. A malformed regex pattern is kept as
// a literal substring match rather than rejected outright, since a
// baseline generated by another tool should still suppress what it can.
func New(entries []config.IgnoreEntry) *Filter {
	f := &Filter{}
	for _, e := range entries {
		compiled := &Entry{source: e, budget: e.Count}
		if pat, ok := asRegexPattern(e.Message); ok {
			if re, err := regexp.Compile(pat); err == nil {
				compiled.messageRe = re
			}
		}
		f.entries = append(f.entries, compiled)
	}
	return f
}

// asRegexPattern reports whether s is written in delimited-regex form —
// PHPStan's `#pattern#` or the `/pattern/` form spec §3.7/§4.5 also allow —
// and returns the inner pattern if so.
func asRegexPattern(s string) (string, bool) {
	if len(s) >= 2 && (s[0] == '#' || s[0] == '/') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1], true
	}
	return "", false
}

func (e *Entry) matchesMessage(msg string) bool {
	if e.source.Message == "" {
		return true
	}
	if e.messageRe != nil {
		return e.messageRe.MatchString(msg)
	}
	return strings.Contains(msg, e.source.Message)
}

func (e *Entry) matchesIdentifier(id diag.Code) bool {
	if e.source.Identifier == "" {
		return true
	}
	return e.source.Identifier == string(id)
}

func (e *Entry) matchesPath(path string) bool {
	if e.source.Path == "" {
		return true
	}
	ok, err := filepath.Match(e.source.Path, path)
	if err != nil {
		return strings.Contains(path, e.source.Path)
	}
	return ok
}

// tryConsume reports whether e matches d and, if so, whether it still has
// budget to absorb it (budget<=0 means unlimited). It is safe to call
// concurrently from several files' worker goroutines.
func (e *Entry) tryConsume(d diag.Diagnostic) bool {
	if !e.matchesMessage(d.Message) || !e.matchesIdentifier(d.Identifier) || !e.matchesPath(d.Location.Path) {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.budget > 0 && e.matched >= e.budget {
		return false
	}
	e.matched++
	return true
}

// Result is the outcome of filtering one run's diagnostics.
type Result struct {
	Kept      []diag.Diagnostic // diagnostics not suppressed by any entry
	Suppressed int              // count of diagnostics a baseline entry absorbed
	Unmatched []config.IgnoreEntry // baseline entries whose budget was never fully spent
}

// Apply filters diagnostics against f, returning the surviving set plus
// bookkeeping spec §4.4 requires: entries whose declared count was never
// reached are reported back so `--strict-baseline` style runs can flag a
// stale baseline entry via diag.CodeIgnoredErrorUnmatch.
func (f *Filter) Apply(diagnostics []diag.Diagnostic) Result {
	var res Result
	for _, d := range diagnostics {
		if !d.Ignorable() {
			res.Kept = append(res.Kept, d)
			continue
		}
		absorbed := false
		for _, e := range f.entries {
			if e.tryConsume(d) {
				absorbed = true
				res.Suppressed++
				break
			}
		}
		if !absorbed {
			res.Kept = append(res.Kept, d)
		}
	}
	for _, e := range f.entries {
		e.mu.Lock()
		stale := e.source.Count > 0 && e.matched < e.source.Count
		e.mu.Unlock()
		if stale {
			res.Unmatched = append(res.Unmatched, e.source)
		}
	}
	return res
}
