package diag

import (
	"github.com/phpray/phpray/internal/edit"
	"github.com/phpray/phpray/internal/source"
)

// Location pinpoints a diagnostic in a file (spec §3.3).
type Location struct {
	Path   string
	Line   uint32
	Column uint32
	Span   source.Span
}

// Diagnostic is the (location, severity, identifier, message, fix?) tuple
// from spec §3.3. Message wording is part of Identifier's public contract:
// baselines match against it by substring or regex.
type Diagnostic struct {
	Location   Location
	Severity   Severity
	Identifier Code
	Message    string
	Fix        *edit.Edit
}

// Ignorable reports whether this diagnostic may be suppressed by a
// baseline/ignore entry. Only the `parse.error`, `io.error` and
// internal-error identifiers are not ignorable, mirroring the reference analyzer's
// treatment of unrecoverable file-level failures.
func (d Diagnostic) Ignorable() bool {
	switch d.Identifier {
	case CodeParseError, CodeRuleInternalError, CodeCheckInternalError, CodeIOError:
		return false
	default:
		return true
	}
}
