// Package resource holds the project-wide Resource Table: a write-once mapping
// from namespace path to declaration stub, populated during structuring and
// frozen before any body is parsed.
package resource

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"fire/internal/diag"
	"fire/internal/namespace"
)

// ErrFrozen is returned by Insert after Freeze.
var ErrFrozen = errors.New("resource table is frozen")

// Table maps namespace paths to stubs. Keys are unique across the project.
// Safe for concurrent use, though the driver funnels all inserts through one goroutine.
type Table struct {
	mu     sync.RWMutex
	stubs  map[string]Stub
	order  []string
	frozen bool
}

func NewTable(hint int) *Table {
	return &Table{
		stubs: make(map[string]Stub, hint),
		order: make([]string, 0, hint),
	}
}

// Insert adds s, or rejects it without touching the table.
// A collision yields a ResDuplicate *diag.Diagnostic that owns copies of the
// path and both file locations; the first declaration stays.
func (t *Table) Insert(s Stub) error {
	key := s.Path.Key()

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.frozen {
		return fmt.Errorf("insert %s: %w", s.Path, ErrFrozen)
	}
	if prev, ok := t.stubs[key]; ok {
		return duplicate(prev, s)
	}
	t.stubs[key] = s
	t.order = append(t.order, key)
	return nil
}

func duplicate(prev, s Stub) *diag.Diagnostic {
	path := s.Path.String()
	return diag.NewError(diag.ResDuplicate, s.Span,
		fmt.Sprintf("duplicate resource %s (%s, already declared as %s)", path, s.Kind, prev.Kind)).
		At(s.File, s.Pos).
		ForResource(path).
		WithNote(diag.Note{Span: prev.Span, File: prev.File, Pos: prev.Pos, Msg: "first declared here"})
}

// Lookup returns the stub at p, if any. It never fails.
func (t *Table) Lookup(p namespace.Path) (Stub, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.stubs[p.Key()]
	return s, ok
}

// Freeze makes the table read-only for downstream phases.
func (t *Table) Freeze() {
	t.mu.Lock()
	t.frozen = true
	t.mu.Unlock()
}

func (t *Table) Frozen() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.frozen
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.stubs)
}

// Stubs returns all stubs sorted by path.
func (t *Table) Stubs() []Stub {
	t.mu.RLock()
	out := make([]Stub, 0, len(t.stubs))
	for _, k := range t.order {
		out = append(out, t.stubs[k])
	}
	t.mu.RUnlock()

	slices.SortFunc(out, func(a, b Stub) int { return namespace.Compare(a.Path, b.Path) })
	return out
}

// Children returns the direct children of p sorted by path.
func (t *Table) Children(p namespace.Path) []Stub {
	var out []Stub
	for _, s := range t.Stubs() {
		if s.Path.Len() == p.Len()+1 && s.Path.HasPrefix(p) {
			out = append(out, s)
		}
	}
	return out
}
