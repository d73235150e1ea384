package diag

// Reporter is the minimal sink a Check uses to emit diagnostics without
// depending on how they're collected (Bag today, something else tomorrow).
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter adapts a *Bag to the Reporter interface.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// NopReporter discards every diagnostic; useful for checks run in contexts
// that only care about side effects (benchmarks, dry runs).
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}
