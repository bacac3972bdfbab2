package lexer

import (
	"fire/internal/token"
)

// scanIdentOrKeyword сканирует [a-z][A-Za-z0-9_]* и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые (только lowercase). Token.Text — ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.bumpIdentRun()

	tok := lx.emit(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// scanTypeName сканирует [A-Z][A-Za-z0-9_]*; "Self" — отдельный токен.
func (lx *Lexer) scanTypeName() token.Token {
	start := lx.cursor.Mark()
	lx.bumpIdentRun()

	tok := lx.emit(token.Type, start)
	if tok.Text == "Self" {
		tok.Kind = token.SelfType
	}
	return tok
}

// scanAnnotation сканирует '@' и следующий за ним (возможно пустой) идентификатор.
func (lx *Lexer) scanAnnotation() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '@'
	nameStart := lx.cursor.Off
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: token.Annotation,
		Span: sp,
		Pos:  start.Pos(),
		Text: string(lx.file.Content[nameStart:sp.End]),
	}
}

func (lx *Lexer) bumpIdentRun() {
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}
