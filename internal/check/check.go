// Package check defines the Check contract (spec §4.6): a pure function
// from one file's CST (plus the frozen project symbol table) to zero or
// more diagnostics, gated by the strictness level hierarchy 0-10.
package check

import (
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/phpast"
)

// Level is a strictness level in the fixed 0-10 hierarchy (spec §4.6).
// Enabling level N enables every check registered at levels 0..N.
type Level int

const (
	Level0  Level = 0  // symbol existence, arity
	Level1  Level = 1  // variable definedness
	Level2  Level = 2  // member resolution
	Level3  Level = 3  // return/property type compatibility
	Level4  Level = 4  // dead code, narrowing redundancy
	Level5  Level = 5  // argument type compatibility
	Level6  Level = 6  // missing type declarations
	Level7  Level = 7  // union discipline
	Level8  Level = 8  // nullable discipline
	Level9  Level = 9  // mixed discipline (explicit)
	Level10 Level = 10 // mixed discipline (implicit)
)

// SymbolTable is the minimal read-only view a Check needs of the frozen
// project-wide symbol table built in the declaration-scan phase (spec §5
// phase 1-2). Defined here (rather than imported from package symbols) to
// keep check's dependency on symbols one-directional and narrow.
type SymbolTable interface {
	HasFunction(name string) bool
	HasClass(name string) bool
	HasMethod(class, method string) bool
	HasClassConstant(class, name string) bool
	HasProperty(class, name string) bool
	// IsSubclassOf reports whether ancestor appears in class's own extends
	// chain (class itself counts, so IsSubclassOf(x, x) is true).
	IsSubclassOf(class, ancestor string) bool
}

// Input is everything a Check needs to analyze one file.
type Input struct {
	File    *phpast.File
	Path    string
	Symbols SymbolTable
}

// Check inspects a file at a given strictness level and reports
// diagnostics through rep. Implementations must be pure given (Input,
// SymbolTable) (spec §9); they must not retain in beyond the call.
type Check interface {
	Metadata() Metadata
	Run(in Input, rep diag.Reporter)
}

// Metadata describes a check for selection and documentation purposes.
type Metadata struct {
	ID    diag.Code
	Level Level
	Title string
}

// Registry holds every known Check, indexed by the level it belongs to.
type Registry struct {
	byLevel map[Level][]Check
}

func NewRegistry() *Registry {
	return &Registry{byLevel: make(map[Level][]Check)}
}

func (reg *Registry) Register(c Check) {
	lvl := c.Metadata().Level
	reg.byLevel[lvl] = append(reg.byLevel[lvl], c)
}

// Active returns every check registered at or below maxLevel, the
// "enabling level N enables 0..N" rule from spec §4.6.
func (reg *Registry) Active(maxLevel Level) []Check {
	var out []Check
	for lvl := Level0; lvl <= maxLevel; lvl++ {
		out = append(out, reg.byLevel[lvl]...)
	}
	return out
}
