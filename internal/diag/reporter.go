package diag

import (
	"sync"

	"fire/internal/source"
)

// Reporter — минимальный контракт получения диагностик от фаз.
// Реализации: BagReporter (кладёт в Bag), FirstReporter (запоминает первую), NopReporter.
type Reporter interface {
	Report(d *Diagnostic)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     *Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(sev, code, primary, msg),
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, msg)
}

// At sets file path and position.
func (b *ReportBuilder) At(file string, pos source.LineCol) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.At(file, pos)
	return b
}

// WithNote appends a note to diagnostic.
func (b *ReportBuilder) WithNote(n Note) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.WithNote(n)
	return b
}

// Emit sends diagnostic to underlying reporter exactly once and returns it.
func (b *ReportBuilder) Emit() *Diagnostic {
	if b == nil {
		return nil
	}
	if !b.emitted && b.reporter != nil {
		b.reporter.Report(b.diag)
	}
	b.emitted = true
	return b.diag
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() *Diagnostic {
	if b == nil {
		return nil
	}
	return b.diag
}

// BagReporter — адаптер, который пишет в *Bag. Безопасен для горутин.
type BagReporter struct {
	mu  sync.Mutex
	Bag *Bag
}

func (r *BagReporter) Report(d *Diagnostic) {
	if r == nil || r.Bag == nil || d == nil {
		return
	}
	r.mu.Lock()
	r.Bag.Add(d)
	r.mu.Unlock()
}

// FirstReporter keeps only the first diagnostic it receives.
type FirstReporter struct {
	first *Diagnostic
}

func (r *FirstReporter) Report(d *Diagnostic) {
	if r.first == nil {
		r.first = d
	}
}

// First returns the captured diagnostic or nil.
func (r *FirstReporter) First() *Diagnostic { return r.first }

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(*Diagnostic) {}

// MultiReporter fans a diagnostic out to several reporters.
type MultiReporter []Reporter

func (m MultiReporter) Report(d *Diagnostic) {
	for _, r := range m {
		if r != nil {
			r.Report(d)
		}
	}
}
