// Package rule defines the Rule contract (spec §4.3): a pure function from
// one file's CST to a set of proposed edits, plus the registry that
// presets/categories/versions select rules from.
package rule

import (
	"github.com/phpray/phpray/internal/edit"
	"github.com/phpray/phpray/internal/phpast"
)

// Metadata describes a rule for selection purposes, grounded on the
// dockerfile linter's RuleMetadata shape in the example pack, extended
// with the preset/category/version axes spec §4.3 requires.
type Metadata struct {
	ID          string
	Summary     string
	Categories  []string // e.g. "modernize", "dead-code", "style"
	Presets     []string // e.g. "safe", "aggressive"
	MinPHP      string   // e.g. "8.0"; "" means no floor
	Applicability edit.Applicability
}

// Input is everything a Rule needs to inspect one file.
type Input struct {
	File *phpast.File
	Path string
}

// Rule inspects a file and proposes zero or more edits. Implementations
// must be pure: same Input in, same []edit.Edit out, no shared mutable
// state across files (spec §9).
type Rule interface {
	Metadata() Metadata
	Apply(in Input) []edit.Edit
}

// Registry holds every known Rule and answers selection queries.
type Registry struct {
	rules []Rule
}

// NewRegistry returns an empty registry; call Register to populate it.
func NewRegistry() *Registry { return &Registry{} }

// Register adds r to the registry. Panics on duplicate IDs since that
// indicates a programming error, not a runtime condition.
func (reg *Registry) Register(r Rule) {
	id := r.Metadata().ID
	for _, existing := range reg.rules {
		if existing.Metadata().ID == id {
			panic("rule: duplicate rule id " + id)
		}
	}
	reg.rules = append(reg.rules, r)
}

// All returns every registered rule, in registration order.
func (reg *Registry) All() []Rule {
	out := make([]Rule, len(reg.rules))
	copy(out, reg.rules)
	return out
}

// Selection narrows a Registry's rules to a preset/category/phpVersion/skip
// filter, the inputs spec §4.3 names as the selection axes.
type Selection struct {
	Preset     string   // "" means no preset filter
	Categories []string // empty means no category filter
	PHPVersion string   // "" means no version floor check
	Skip       []string // rule IDs to exclude regardless of other matches
}

// Select returns the rules matching sel, in registration order.
func (reg *Registry) Select(sel Selection) []Rule {
	skip := make(map[string]bool, len(sel.Skip))
	for _, id := range sel.Skip {
		skip[id] = true
	}
	wantCat := make(map[string]bool, len(sel.Categories))
	for _, c := range sel.Categories {
		wantCat[c] = true
	}
	var out []Rule
	for _, r := range reg.rules {
		m := r.Metadata()
		if skip[m.ID] {
			continue
		}
		if sel.Preset != "" && !containsStr(m.Presets, sel.Preset) {
			continue
		}
		if len(wantCat) > 0 && !anyCategoryMatches(m.Categories, wantCat) {
			continue
		}
		if sel.PHPVersion != "" && m.MinPHP != "" && versionLess(sel.PHPVersion, m.MinPHP) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func containsStr(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}

func anyCategoryMatches(have []string, want map[string]bool) bool {
	for _, c := range have {
		if want[c] {
			return true
		}
	}
	return false
}

// versionLess compares two "major.minor" PHP version strings. Malformed
// input is treated as the lowest possible version so a misconfigured
// phpVersion never silently enables a rule it shouldn't.
func versionLess(a, b string) bool {
	am, an := parseVersion(a)
	bm, bn := parseVersion(b)
	if am != bm {
		return am < bm
	}
	return an < bn
}

func parseVersion(v string) (major, minor int) {
	i := 0
	for i < len(v) && v[i] >= '0' && v[i] <= '9' {
		major = major*10 + int(v[i]-'0')
		i++
	}
	if i < len(v) && v[i] == '.' {
		i++
		for i < len(v) && v[i] >= '0' && v[i] <= '9' {
			minor = minor*10 + int(v[i]-'0')
			i++
		}
	}
	return major, minor
}
