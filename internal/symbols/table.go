// Package symbols builds the project-wide declaration table used by Checks
// to resolve function/class/method/property existence across file
// boundaries (spec §4.7, §5 phase 1-2: declaration scan then freeze).
package symbols

import (
	"strings"
	"sync"

	"github.com/phpray/phpray/internal/phpast"
)

// ClassInfo holds one class/interface/trait/enum's declared members.
type ClassInfo struct {
	Kind       string
	Name       string
	Extends    []string
	Implements []string
	Methods    map[string]bool
	Properties map[string]bool
	Constants  map[string]bool
}

// Table is the frozen, read-only project symbol table a Check consults.
// It implements check.SymbolTable without importing package check, since
// the dependency runs the other way (engine wires Table into check.Input).
type Table struct {
	mu        sync.RWMutex
	functions map[string]bool
	classes   map[string]*ClassInfo
	frozen    bool
}

// NewTable returns an empty, mutable table ready for the declaration scan.
func NewTable() *Table {
	return &Table{
		functions: make(map[string]bool),
		classes:   make(map[string]*ClassInfo),
	}
}

func key(name string) string { return strings.ToLower(name) }

// FileDecls is one file's top-level declarations, independent of any
// Table — the shape internal/cache persists so a later run over an
// unchanged file can skip re-walking its AST for the declaration scan.
type FileDecls struct {
	Functions []string
	Classes   []ClassInfo
}

// ScanFile extracts file's top-level declarations without touching any
// Table, so the same extraction logic backs both the live scan (Scan)
// and the on-disk declaration cache.
func ScanFile(file *phpast.File) FileDecls {
	var decls FileDecls
	for _, stmt := range file.Statements {
		switch s := stmt.(type) {
		case *phpast.FuncDecl:
			if !s.IsMethod {
				decls.Functions = append(decls.Functions, key(s.Name))
			}
		case *phpast.ClassDecl:
			decls.Classes = append(decls.Classes, classInfoOf(s))
		}
	}
	return decls
}

func classInfoOf(c *phpast.ClassDecl) ClassInfo {
	info := ClassInfo{
		Kind:       c.Kind,
		Name:       c.Name,
		Methods:    make(map[string]bool),
		Properties: make(map[string]bool),
		Constants:  make(map[string]bool),
	}
	for _, e := range c.Extends {
		info.Extends = append(info.Extends, e.String())
	}
	for _, i := range c.Implements {
		info.Implements = append(info.Implements, i.String())
	}
	for _, m := range c.Methods {
		info.Methods[key(m.Name)] = true
	}
	for _, p := range c.Properties {
		// Property lookups are case-sensitive (spec §4.7): store verbatim.
		info.Properties[p.Name] = true
	}
	for _, cc := range c.Consts {
		// Class-constant lookups are case-sensitive (spec §4.7): store verbatim.
		info.Constants[cc.Name] = true
	}
	return info
}

// Scan walks one file's top-level declarations and records them. Scan may
// be called concurrently from different goroutines for different files
// (spec §5 phase 1 is embarrassingly parallel); Table serializes writes
// internally.
func (t *Table) Scan(file *phpast.File) {
	t.Merge(ScanFile(file))
}

// Merge folds a previously-extracted (or cached) FileDecls into t.
func (t *Table) Merge(decls FileDecls) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, fn := range decls.Functions {
		t.functions[fn] = true
	}
	for _, ci := range decls.Classes {
		c := ci
		t.classes[key(c.Name)] = &c
	}
}

// Freeze records that the declaration scan is complete. Merge does not
// check the flag, so the table stays writable. Must be called once the declaration
// scan phase (spec §5 phase 1) has processed every file in the project,
// before the analysis phase (phase 3) begins.
func (t *Table) Freeze() {
	t.mu.Lock()
	t.frozen = true
	t.mu.Unlock()
}

// HasFunction reports whether name (case-insensitively) was declared
// anywhere in the project, PHP's own name resolution rule for functions.
func (t *Table) HasFunction(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.functions[key(name)]
}

func (t *Table) class(name string) *ClassInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.classes[key(name)]
}

func (t *Table) HasClass(name string) bool { return t.class(name) != nil }

// HasMethod walks the extends chain looking for method, bounded to avoid
// looping on an (invalid) extends cycle.
func (t *Table) HasMethod(class, method string) bool {
	return t.walkChain(class, func(ci *ClassInfo) bool { return ci.Methods[key(method)] })
}

// HasClassConstant looks up name case-sensitively: PHP resolves class
// constants and properties by exact name, unlike functions/classes/methods.
func (t *Table) HasClassConstant(class, name string) bool {
	return t.walkChain(class, func(ci *ClassInfo) bool { return ci.Constants[name] })
}

// HasProperty looks up name case-sensitively (spec §4.7).
func (t *Table) HasProperty(class, name string) bool {
	return t.walkChain(class, func(ci *ClassInfo) bool { return ci.Properties[name] })
}

// IsSubclassOf reports whether ancestor appears in class's own extends
// chain (class itself counts, so IsSubclassOf(x, x) is true).
func (t *Table) IsSubclassOf(class, ancestor string) bool {
	seen := make(map[string]bool)
	cur := class
	for cur != "" && !seen[key(cur)] {
		if key(cur) == key(ancestor) {
			return true
		}
		seen[key(cur)] = true
		ci := t.class(cur)
		if ci == nil || len(ci.Extends) == 0 {
			return false
		}
		cur = ci.Extends[0]
	}
	return false
}

func (t *Table) walkChain(class string, pred func(*ClassInfo) bool) bool {
	seen := make(map[string]bool)
	cur := class
	for cur != "" && !seen[key(cur)] {
		seen[key(cur)] = true
		ci := t.class(cur)
		if ci == nil {
			return false
		}
		if pred(ci) {
			return true
		}
		if len(ci.Extends) == 0 {
			return false
		}
		cur = ci.Extends[0]
	}
	return false
}
