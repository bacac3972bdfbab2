package lexer

import (
	"fmt"

	"fire/internal/diag"
	"fire/internal/token"
)

// Жадность: сначала 2-символьные, затем 1-символьные.
// Комментарии отсекаются раньше, в skipTrivia.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try2('+', '='):
		return lx.emit(token.PlusAssign, start)
	case lx.try2('+', '+'):
		return lx.emit(token.Increment, start)
	case lx.try2('-', '='):
		return lx.emit(token.MinusAssign, start)
	case lx.try2('-', '-'):
		return lx.emit(token.Decrement, start)
	case lx.try2('*', '='):
		return lx.emit(token.MultiplyAssign, start)
	case lx.try2('/', '='):
		return lx.emit(token.DivideAssign, start)
	case lx.try2('%', '='):
		return lx.emit(token.ModAssign, start)
	case lx.try2('&', '&'):
		return lx.emit(token.StrictAnd, start)
	case lx.try2('|', '|'):
		return lx.emit(token.StrictOr, start)
	case lx.try2('=', '='):
		return lx.emit(token.Equals, start)
	case lx.try2('=', '>'):
		return lx.emit(token.FatArrow, start)
	case lx.try2('>', '='):
		return lx.emit(token.GreaterEqual, start)
	case lx.try2('<', '='):
		return lx.emit(token.LessEqual, start)
	case lx.try2(':', ':'):
		return lx.emit(token.Accesser, start)
	case lx.try2('!', '='):
		return lx.emit(token.NotEqual, start)
	}

	// односимвольные
	if k, ok := singleCharKinds[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return lx.emit(k, start)
	}

	// неизвестный символ: съедаем всю руну, чтобы показать её целиком
	r, sz := lx.peekRune()
	for i := 0; i < sz; i++ {
		lx.cursor.Bump()
	}
	lx.fail(diag.LexUnknownChar, start, lx.cursor.SpanFrom(start), fmt.Sprintf("unrecognized token %q", r))
	return lx.invalid(start)
}

var singleCharKinds = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Multiply,
	'/': token.Divide,
	'%': token.Mod,
	'&': token.And,
	'|': token.Or,
	'!': token.Not,
	'^': token.Xor,
	'=': token.Assign,
	'>': token.Greater,
	'<': token.Less,
	':': token.Colon,
	',': token.Comma,
	'.': token.Dot,
	'(': token.OpenParen,
	')': token.CloseParen,
	'{': token.OpenBrace,
	'}': token.CloseBrace,
	'[': token.OpenBracket,
	']': token.CloseBracket,
}
