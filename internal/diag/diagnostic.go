package diag

import (
	"fmt"
	"strings"

	"fire/internal/source"
)

// Note — вторичная позиция с пояснением.
type Note struct {
	Span source.Span
	File string
	Pos  source.LineCol
	Msg  string
}

// Diagnostic владеет копиями всех идентифицирующих данных (путь файла,
// путь ресурса), чтобы не ссылаться на структуры, изменение которых её вызвало.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	File     string         // путь файла, как его видит пользователь
	Pos      source.LineCol // 1-based; нулевое значение — позиция неизвестна
	Resource string         // namespace path для ResDuplicate
	Notes    []Note
}

// Error renders the diagnostic as one line: "file:line:col: ERROR LEX1001: message".
func (d *Diagnostic) Error() string {
	var b strings.Builder
	if loc := location(d.File, d.Pos); loc != "" {
		b.WriteString(loc)
		b.WriteString(": ")
	}
	b.WriteString(d.Severity.String())
	b.WriteByte(' ')
	b.WriteString(d.Code.ID())
	b.WriteString(": ")
	b.WriteString(d.Message)
	return b.String()
}

// Location returns "file:line:col", "file" or "" depending on what is known.
func (d *Diagnostic) Location() string {
	return location(d.File, d.Pos)
}

func location(file string, pos source.LineCol) string {
	if file == "" {
		return ""
	}
	if pos.Line == 0 {
		return file
	}
	if pos.Col == 0 {
		return fmt.Sprintf("%s:%d", file, pos.Line)
	}
	return fmt.Sprintf("%s:%d:%d", file, pos.Line, pos.Col)
}
