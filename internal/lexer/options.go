package lexer

import (
	"fire/internal/diag"
	"fire/internal/source"
)

type Options struct {
	// Reporter получает диагностику (если есть) в момент её возникновения; может быть nil.
	Reporter diag.Reporter
	// Path — путь файла для диагностик; по умолчанию File.Path.
	Path string
}

// fail фиксирует первую и единственную диагностику прохода и проматывает курсор
// в конец файла: после ошибки лексер выдаёт только EOF.
func (lx *Lexer) fail(code diag.Code, at Mark, sp source.Span, msg string) {
	if lx.err != nil {
		return
	}
	path := lx.opts.Path
	if path == "" {
		path = lx.file.Path
	}
	lx.err = diag.ReportError(lx.opts.Reporter, code, sp, msg).
		At(path, at.Pos()).
		Emit()
	lx.cursor.SkipToEnd()
}
