package diagfmt

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"fire/internal/diag"
	"fire/internal/source"
)

// Line renders d as the single line the CLI prints on failure.
func Line(d *diag.Diagnostic) string {
	if d == nil {
		return ""
	}
	return d.Error()
}

type palette struct {
	err, warn, info, code, path, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.FgWhite, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty печатает диагностики bag (ожидается bag.Sort() заранее):
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	   |
//	 3 | let s = "abc\q"
//	   |             ^~
//
// затем заметки в том же формате. Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		file := lookup(fs, d.File)
		loc := location(fs, file, d.File, d.Pos, opts.PathMode)
		if loc != "" {
			fmt.Fprintf(w, "%s: ", p.path.Sprint(loc))
		}
		fmt.Fprintf(w, "%s %s: %s\n", p.severity(d.Severity).Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message)
		if file != nil && d.Pos.Line > 0 {
			snippet(w, p, file, d.Pos, spanWidth(file, d.Primary), int(opts.Context))
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := lookup(fs, n.File)
			if nloc := location(fs, nf, n.File, n.Pos, opts.PathMode); nloc != "" {
				fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), p.path.Sprint(nloc), n.Msg)
			} else {
				fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
			}
			if nf != nil && n.Pos.Line > 0 {
				snippet(w, p, nf, n.Pos, spanWidth(nf, n.Span), 0)
			}
		}
	}
}

func lookup(fs *source.FileSet, path string) *source.File {
	if fs == nil || path == "" {
		return nil
	}
	f, ok := fs.GetByPath(path)
	if !ok {
		return nil
	}
	return f
}

func location(fs *source.FileSet, f *source.File, path string, pos source.LineCol, mode PathMode) string {
	if f != nil {
		path = f.FormatPath(mode.mode(), fs.BaseDir())
	}
	if path == "" {
		return ""
	}
	switch {
	case pos.Line == 0:
		return path
	case pos.Col == 0:
		return fmt.Sprintf("%s:%d", path, pos.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", path, pos.Line, pos.Col)
	}
}

// spanWidth — ширина подчёркивания в рунах, в пределах первой строки спана.
func spanWidth(f *source.File, sp source.Span) int {
	if sp.File != f.ID || sp.Empty() || int(sp.End) > len(f.Content) {
		return 1
	}
	text := f.Content[sp.Start:sp.End]
	if i := strings.IndexByte(string(text), '\n'); i >= 0 {
		text = text[:i]
	}
	return max(utf8.RuneCount(text), 1)
}

func snippet(w io.Writer, p palette, f *source.File, pos source.LineCol, width, context int) {
	first := max(int(pos.Line)-context, 1)
	gw := len(fmt.Sprint(pos.Line))
	blank := strings.Repeat(" ", gw)
	fmt.Fprintf(w, " %s %s\n", blank, p.gutter.Sprint("|"))
	for n := first; n <= int(pos.Line); n++ {
		fmt.Fprintf(w, " %*d %s %s\n", gw, n, p.gutter.Sprint("|"), f.GetLine(uint32(n)))
	}

	line := f.GetLine(pos.Line)
	col := max(int(pos.Col), 1)
	// отступ до каретки — по ширине на экране, иначе широкие руны её сдвинут
	prefix := line
	if runes := []rune(line); col-1 <= len(runes) {
		prefix = string(runes[:col-1])
	}
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))
	marker := "^" + strings.Repeat("~", max(width-1, 0))
	fmt.Fprintf(w, " %s %s %s%s\n", blank, p.gutter.Sprint("|"), pad, p.caret.Sprint(marker))
}
