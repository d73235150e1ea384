package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/source"
)

// Pretty renders diagnostics for a terminal: one header line per
// diagnostic (path:line:col: SEVERITY identifier: message) followed by
// the offending source line and a caret underline. Callers should sort
// diagnostics (diag.Bag.Sort) first so output order is reproducible.
func Pretty(w io.Writer, diagnostics []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	errorColor := color.New(color.FgRed, color.Bold)
	warningColor := color.New(color.FgYellow, color.Bold)
	hintColor := color.New(color.FgCyan, color.Bold)
	pathColor := color.New(color.FgWhite, color.Bold)
	identColor := color.New(color.FgMagenta)
	underlineColor := color.New(color.FgRed, color.Bold)

	prevNoColor := color.NoColor
	defer func() { color.NoColor = prevNoColor }()
	color.NoColor = !opts.Color

	context := opts.Context
	if context <= 0 {
		context = 1
	}

	for idx, d := range diagnostics {
		if idx > 0 {
			fmt.Fprintln(w)
		}

		path := pathFor(d, fs, opts.PathMode)
		col := d.Location.Column
		if col == 0 {
			col = 1
		}

		var sevColored string
		switch d.Severity {
		case diag.SevError:
			sevColored = errorColor.Sprint("ERROR")
		case diag.SevWarning:
			sevColored = warningColor.Sprint("WARNING")
		default:
			sevColored = hintColor.Sprint("HINT")
		}

		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			pathColor.Sprint(path), d.Location.Line, col,
			sevColored, identColor.Sprint(string(d.Identifier)), d.Message)

		if fs == nil {
			continue
		}
		f := fs.Get(d.Location.Span.File)
		if f == nil {
			continue
		}
		printSourceContext(w, f, d.Location.Line, col, context, opts.Width, underlineColor)
	}
}

func printSourceContext(w io.Writer, f *source.File, line, col uint32, context, width int, underline *color.Color) {
	start := int(line) - context
	if start < 1 {
		start = 1
	}
	end := int(line) + context

	for ln := start; ln <= end; ln++ {
		text := f.GetLine(uint32(ln))
		if text == "" && uint32(ln) != line {
			continue
		}
		text = truncateGraphemeSafe(text, width)
		fmt.Fprintf(w, "  %4d | %s\n", ln, text)
		if uint32(ln) == line {
			pad := strings.Repeat(" ", int(col-1))
			fmt.Fprintf(w, "       | %s%s\n", pad, underline.Sprint("^"))
		}
	}
}
