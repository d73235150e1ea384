package diagfmt

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/edit"
	"github.com/phpray/phpray/internal/source"
)

// DiagnosticWire is one diagnostic in the stable wire format.
type DiagnosticWire struct {
	Message    string `json:"message"`
	Line       uint32 `json:"line"`
	Ignorable  bool   `json:"ignorable"`
	Identifier string `json:"identifier"`
}

// FileTotals summarizes diagnostic counts across the whole run.
type FileTotals struct {
	Errors     int `json:"errors"`
	FileErrors int `json:"file_errors"`
}

// FileEntry is one path's slice of the aggregation.
type FileEntry struct {
	Errors   int              `json:"errors"`
	Messages []DiagnosticWire `json:"messages"`
}

// Aggregate is the top-level JSON document spec §6.2 describes: totals,
// a per-path breakdown, and top-level errors that aren't tied to a file
// (configuration or I/O failures reported before any file was opened).
type Aggregate struct {
	Totals FileTotals             `json:"totals"`
	Files  map[string]*FileEntry  `json:"files"`
	Errors []DiagnosticWire       `json:"errors"`
}

func wireOf(d diag.Diagnostic) DiagnosticWire {
	return DiagnosticWire{
		Message:    d.Message,
		Line:       d.Location.Line,
		Ignorable:  d.Ignorable(),
		Identifier: string(d.Identifier),
	}
}

func pathFor(d diag.Diagnostic, fs *source.FileSet, mode PathMode) string {
	if fs == nil {
		return d.Location.Path
	}
	f := fs.Get(d.Location.Span.File)
	if f == nil {
		return d.Location.Path
	}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", fs.BaseDir())
	}
}

// BuildAggregate groups diagnostics by file per spec's wire aggregation
// shape. topLevel carries diagnostics not tied to any file (configuration
// errors, I/O failures before a file was opened).
func BuildAggregate(diagnostics []diag.Diagnostic, topLevel []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) Aggregate {
	agg := Aggregate{Files: make(map[string]*FileEntry)}

	for _, d := range diagnostics {
		path := pathFor(d, fs, opts.PathMode)
		entry := agg.Files[path]
		if entry == nil {
			entry = &FileEntry{}
			agg.Files[path] = entry
		}
		entry.Messages = append(entry.Messages, wireOf(d))
		if d.Severity == diag.SevError {
			entry.Errors++
			agg.Totals.Errors++
		}
	}
	if len(diagnostics) > 0 {
		agg.Totals.FileErrors = len(agg.Files)
	}

	for _, d := range topLevel {
		agg.Errors = append(agg.Errors, wireOf(d))
	}

	for _, entry := range agg.Files {
		sort.SliceStable(entry.Messages, func(i, j int) bool {
			if entry.Messages[i].Line != entry.Messages[j].Line {
				return entry.Messages[i].Line < entry.Messages[j].Line
			}
			return entry.Messages[i].Identifier < entry.Messages[j].Identifier
		})
	}

	return agg
}

// JSON writes the aggregation to w as indented JSON.
func JSON(w io.Writer, diagnostics []diag.Diagnostic, topLevel []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) error {
	agg := BuildAggregate(diagnostics, topLevel, fs, opts)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(agg)
}

// EditWire is one edit in the refactoring-mode wire format (spec §6.3).
type EditWire struct {
	Start       uint32 `json:"start"`
	End         uint32 `json:"end"`
	Replacement string `json:"replacement"`
	Message     string `json:"message"`
}

// EditsToWire converts edits to their serializable shape, byte offsets
// relative to the original source the edits were computed against.
func EditsToWire(edits []edit.Edit) []EditWire {
	out := make([]EditWire, len(edits))
	for i, e := range edits {
		out[i] = EditWire{
			Start:       e.Span.Start,
			End:         e.Span.End,
			Replacement: e.Replacement,
			Message:     e.Message,
		}
	}
	return out
}

// EditsJSON writes edits as a JSON array per spec §6.3.
func EditsJSON(w io.Writer, edits []edit.Edit) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(EditsToWire(edits))
}
