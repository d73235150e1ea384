// Package engine runs the two-phase parallel pipeline spec §5 describes:
// a declaration scan across every file to freeze the project symbol
// table, followed by a fully parallel per-file analysis pass that runs
// rules and checks and reduces their output to a final diagnostic list
// (spec §4.2). Grounded on the teacher's errgroup-based worker pool.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/edit"
	"github.com/phpray/phpray/internal/ignore"
	"github.com/phpray/phpray/internal/phpast"
	"github.com/phpray/phpray/internal/phpparse"
	"github.com/phpray/phpray/internal/rule"
	"github.com/phpray/phpray/internal/source"
	"github.com/phpray/phpray/internal/symbols"
)

// FileReader abstracts source loading so the engine doesn't depend on the
// concrete source.FileSet type it's driven by.
type FileReader interface {
	Get(id source.FileID) *source.File
}

// Options configures one engine run.
type Options struct {
	Jobs           int // worker count; <=0 means runtime.GOMAXPROCS(0)
	MaxDiagnostics int // per-file diagnostic cap; <=0 means unbounded
	Level          check.Level
	Apply          bool                   // run the edit engine and materialize new source
	VerifyParse    bool                   // re-parse applied output before accepting it
	IgnoreFilter   *ignore.Filter         // nil means no baseline filtering
}

// FileResult is one file's outcome from a Run.
type FileResult struct {
	Path         string
	FileID       source.FileID
	Diagnostics  []diag.Diagnostic
	NewSource    []byte // non-nil only when Apply succeeded and changed the file
	AppliedEdits int
	ParseErrors  int
	Err          error
}

// Run executes the full pipeline over files, in the order spec §5
// prescribes: declaration scan (parallel) → freeze → analysis (parallel).
func Run(ctx context.Context, files []source.FileID, fset FileReader, rules []rule.Rule, checks []check.Check, opts Options) ([]FileResult, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	type parsed struct {
		file *phpast.File
		errs []diag.Diagnostic
	}
	cache := make([]parsed, len(files))

	table := symbols.NewTable()
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, fid := range files {
		i, fid := i, fid
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			f := fset.Get(fid)
			if f == nil {
				return fmt.Errorf("engine: file %d not found", fid)
			}
			p := phpparse.New(fid, f.Content)
			tree := p.Parse()
			mu.Lock()
			cache[i] = parsed{file: tree, errs: p.Errors()}
			mu.Unlock()
			table.Scan(tree)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	table.Freeze()

	results := make([]FileResult, len(files))
	g2, gctx2 := errgroup.WithContext(ctx)
	g2.SetLimit(min(jobs, len(files)))
	for i, fid := range files {
		i, fid := i, fid
		g2.Go(func() error {
			select {
			case <-gctx2.Done():
				return gctx2.Err()
			default:
			}
			f := fset.Get(fid)
			results[i] = runFile(f, cache[i].file, cache[i].errs, rules, checks, table, opts)
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runFile(f *source.File, tree *phpast.File, parseErrs []diag.Diagnostic, rules []rule.Rule, checks []check.Check, table *symbols.Table, opts Options) FileResult {
	res := FileResult{Path: f.Path, FileID: f.ID}
	bag := diag.NewBag(opts.MaxDiagnostics)
	for _, pe := range parseErrs {
		pe.Location.Path = f.Path
		bag.Add(pe)
	}
	res.ParseErrors = len(parseErrs)
	if len(parseErrs) > 0 {
		// spec §4.2 step 2: hard parse errors skip rule/check execution
		// for this file but the parse diagnostic itself is still reported.
		res.Diagnostics = finalize(bag, f, opts)
		return res
	}

	suppress := ignore.ParseInlineSuppressions(f.Content)

	var edits []edit.Edit
	for _, r := range rules {
		for _, e := range applyRuleSafely(r, tree, f.Path, bag) {
			line := lineOf(f, e.Span.Start)
			if suppress.Suppresses(line, r.Metadata().ID) {
				continue
			}
			edits = append(edits, e)
		}
	}

	rep := diag.BagReporter{Bag: bag}
	for _, c := range checks {
		runCheckSafely(c, check.Input{File: tree, Path: f.Path, Symbols: table}, filterReporter{rep: rep, suppress: suppress, f: f, id: string(c.Metadata().ID)}, bag)
	}

	if opts.Apply && len(edits) > 0 {
		out, err := edit.Apply(f.Content, edits)
		if err != nil {
			bag.Add(diag.Diagnostic{
				Location:   diag.Location{Path: f.Path},
				Severity:   diag.SevError,
				Identifier: diag.CodeRuleInternalError,
				Message:    err.Error(),
			})
		} else {
			verified := true
			if opts.VerifyParse {
				vp := phpparse.New(f.ID, out)
				vp.Parse()
				verified = len(vp.Errors()) == 0
			}
			if verified {
				res.NewSource = out
				res.AppliedEdits = len(edits)
			} else {
				bag.Add(diag.Diagnostic{
					Location:   diag.Location{Path: f.Path},
					Severity:   diag.SevError,
					Identifier: diag.CodeFixVerifyFailed,
					Message:    "applying edits produced source that failed to re-parse",
				})
			}
		}
	}

	res.Diagnostics = finalize(bag, f, opts)
	return res
}

// applyRuleSafely runs r.Apply recovering from a panic, attributing the
// failure to the rule rather than crashing the whole run (spec §7: "rule
// throws" is an internal error, never a silent swallow), grounded on the
// teacher's defer-recover-and-report idiom in its diagnose command.
func applyRuleSafely(r rule.Rule, tree *phpast.File, path string, bag *diag.Bag) (edits []edit.Edit) {
	defer func() {
		if rec := recover(); rec != nil {
			bag.Add(diag.Diagnostic{
				Location:   diag.Location{Path: path},
				Severity:   diag.SevError,
				Identifier: diag.CodeRuleInternalError,
				Message:    fmt.Sprintf("rule %s panicked: %v", r.Metadata().ID, rec),
			})
			edits = nil
		}
	}()
	return r.Apply(rule.Input{File: tree, Path: path})
}

// runCheckSafely mirrors applyRuleSafely for Check.Run.
func runCheckSafely(c check.Check, in check.Input, rep diag.Reporter, bag *diag.Bag) {
	defer func() {
		if rec := recover(); rec != nil {
			bag.Add(diag.Diagnostic{
				Location:   diag.Location{Path: in.Path},
				Severity:   diag.SevError,
				Identifier: diag.CodeCheckInternalError,
				Message:    fmt.Sprintf("check %s panicked: %v", c.Metadata().ID, rec),
			})
		}
	}()
	c.Run(in, rep)
}

// filterReporter drops a diagnostic that an inline suppression comment
// covers before it ever reaches the bag, so baseline/ignore filtering
// downstream never has to special-case inline markers.
type filterReporter struct {
	rep      diag.BagReporter
	suppress *ignore.InlineSuppressions
	f        *source.File
	id       string
}

func (r filterReporter) Report(d diag.Diagnostic) {
	line := lineOf(r.f, d.Location.Span.Start)
	if r.suppress.Suppresses(line, r.id) {
		return
	}
	d.Location.Path = r.f.Path
	lc := r.f.LineCol(d.Location.Span.Start)
	d.Location.Line = lc.Line
	d.Location.Column = lc.Col
	r.rep.Report(d)
}

func lineOf(f *source.File, offset uint32) int {
	return int(f.LineCol(offset).Line)
}

func finalize(bag *diag.Bag, f *source.File, opts Options) []diag.Diagnostic {
	bag.Sort()
	bag.Dedup()
	diags := bag.Items()
	if opts.IgnoreFilter != nil {
		result := opts.IgnoreFilter.Apply(diags)
		diags = result.Kept
	}
	sorted := make([]diag.Diagnostic, len(diags))
	copy(sorted, diags)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Location.Span.Start < sorted[j].Location.Span.Start })
	return sorted
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
