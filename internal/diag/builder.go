package diag

import "fire/internal/source"

func New(sev Severity, code Code, primary source.Span, msg string) *Diagnostic {
	return &Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) *Diagnostic {
	return New(SevError, code, primary, msg)
}

// At attaches the user-visible file path and position.
func (d *Diagnostic) At(file string, pos source.LineCol) *Diagnostic {
	d.File = file
	d.Pos = pos
	return d
}

// ForResource records the namespace path the diagnostic is about.
func (d *Diagnostic) ForResource(path string) *Diagnostic {
	d.Resource = path
	return d
}

func (d *Diagnostic) WithNote(n Note) *Diagnostic {
	d.Notes = append(d.Notes, n)
	return d
}
