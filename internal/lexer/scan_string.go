package lexer

import (
	"fmt"
	"strings"

	"fire/internal/diag"
	"fire/internal/token"
)

var escapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'0':  0,
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
}

// scanString читает литерал в "..." или '...'; закрывает его только та же кавычка.
// Переводы строк внутри литерала допустимы. Token.Text — уже раскрытое значение.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()

	var val strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			return token.Token{Kind: token.String, Span: lx.cursor.SpanFrom(start), Pos: start.Pos(), Text: val.String()}
		}
		if b != '\\' {
			val.WriteByte(lx.cursor.Bump())
			continue
		}

		esc := lx.cursor.Mark()
		lx.cursor.Bump() // '\'
		if lx.cursor.EOF() {
			break
		}
		if out, ok := escapes[lx.cursor.Peek()]; ok {
			lx.cursor.Bump()
			val.WriteByte(out)
			continue
		}
		r, sz := lx.peekRune()
		for i := 0; i < sz; i++ {
			lx.cursor.Bump()
		}
		lx.fail(diag.LexUnknownEscape, esc, lx.cursor.SpanFrom(esc), fmt.Sprintf("unrecognized escape sequence \\%c", r))
		return lx.invalid(start)
	}

	// EOF без закрывающей кавычки: позиция — открывающая кавычка
	lx.fail(diag.LexUnterminatedString, start, lx.cursor.SpanFrom(start), "unterminated string literal")
	return lx.invalid(start)
}
