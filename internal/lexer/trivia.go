package lexer

import (
	"fire/internal/diag"
)

// skipTrivia пропускает пробелы, переводы строк и комментарии перед значимым токеном.
//   - пробельные символы только ' ' и '\n' ('\r' убирает загрузчик, '\t' — ошибка);
//   - //... до \n включительно (перевод строки учитывается в счётчике строк);
//   - /* ... */ без вложенности; незакрытый — LexUnterminatedBlockComment.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\n':
			lx.cursor.Bump()
			continue
		case '/':
			if lx.skipComment() {
				continue
			}
		}
		return
	}
}

func (lx *Lexer) skipComment() bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' || (b1 != '/' && b1 != '*') {
		return false
	}
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()

	if b1 == '/' {
		for !lx.cursor.EOF() {
			if lx.cursor.Bump() == '\n' {
				break
			}
		}
		return true
	}

	for !lx.cursor.EOF() {
		if lx.try2('*', '/') {
			return true
		}
		lx.cursor.Bump()
	}
	lx.fail(diag.LexUnterminatedBlockComment, start, lx.cursor.SpanFrom(start), "unterminated block comment")
	return true
}
