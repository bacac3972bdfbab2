// Package testkit holds invariant checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"fire/internal/namespace"
	"fire/internal/resource"
	"fire/internal/source"
	"fire/internal/token"
)

// CheckTokenInvariants runs a minimal set of invariants on a token stream:
// 1) every span points into sf and lies within its content
// 2) spans are ordered and do not overlap
// 3) Pos of every token equals the resolved start of its span
// 4) only the last token may be EOF or Invalid
func CheckTokenInvariants(fs *source.FileSet, sf *source.File, toks []token.Token) error {
	if fs == nil || sf == nil {
		return fmt.Errorf("nil file set or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var prevEnd uint32
	for i, tok := range toks {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d (%s): span file mismatch: got=%d want=%d", i, tok.Kind, sp.File, sf.ID)
		}
		if sp.Start > sp.End || sp.End > lenContent {
			return fmt.Errorf("token %d (%s): span %v outside content of %d bytes", i, tok.Kind, sp, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d (%s): span %v overlaps previous token ending at %d", i, tok.Kind, sp, prevEnd)
		}
		prevEnd = sp.End

		if start, _ := fs.Resolve(sp); start != tok.Pos {
			return fmt.Errorf("token %d (%s): pos %d:%d, span starts at %d:%d", i, tok.Kind, tok.Pos.Line, tok.Pos.Col, start.Line, start.Col)
		}
		if (tok.Kind == token.EOF || tok.Kind == token.Invalid) && i != len(toks)-1 {
			// Invalid сразу перед EOF допустим
			if !(tok.Kind == token.Invalid && i == len(toks)-2 && toks[i+1].Kind == token.EOF) {
				return fmt.Errorf("token %d: %s before the end of the stream", i, tok.Kind)
			}
		}
	}
	return nil
}

// CheckStubInvariants checks the stubs scanned from one file:
// every path lies under prefix, is non-root and is named by an identifier
// token of the file; stubs come in source order.
func CheckStubInvariants(prefix namespace.Path, sf *source.File, stubs []resource.Stub) error {
	var prev uint32
	for i, s := range stubs {
		if s.Path.IsRoot() {
			return fmt.Errorf("stub %d: root path", i)
		}
		if !s.Path.HasPrefix(prefix) {
			return fmt.Errorf("stub %d: %s is not under %s", i, s.Path, prefix)
		}
		if s.Span.File != sf.ID || s.Span.End <= s.Span.Start || int(s.Span.End) > len(sf.Content) {
			return fmt.Errorf("stub %d: bad span %v", i, s.Span)
		}
		if name := string(sf.Content[s.Span.Start:s.Span.End]); name != s.Path.Last() {
			return fmt.Errorf("stub %d: span text %q, last segment %q", i, name, s.Path.Last())
		}
		if s.Span.Start < prev {
			return fmt.Errorf("stub %d: %s out of source order", i, s.Path)
		}
		prev = s.Span.Start
	}
	return nil
}
