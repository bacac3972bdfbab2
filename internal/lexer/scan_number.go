package lexer

import (
	"math"

	"fire/internal/diag"
	"fire/internal/token"
)

// Поддержка: 0, 123, 0x1F, 0b101, 0x (== 0), 1.5, 0.25, 12f, 0f, 0b11f.
//   - '.' начинает дробную часть, только если за ней цифра ("1.foo" — Int, Dot, Ident);
//   - хвостовой 'f' превращает целое в Float;
//   - ведущие нули десятичного литерала отбрасываются: "0525" == 525.
//
// Целая часть собирается полностью и только потом сворачивается (старшие разряды
// первыми, с проверкой переполнения int64); дробная — на лету в float32.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		switch b := lx.cursor.Peek(); {
		case b == 'x':
			lx.cursor.Bump()
			return lx.finishRadix(start, 16, isHex, "hexadecimal")
		case b == 'b':
			lx.cursor.Bump()
			return lx.finishRadix(start, 2, isBin, "binary")
		case isDec(b):
			for lx.cursor.Peek() == '0' {
				lx.cursor.Bump()
			}
			if !isDec(lx.cursor.Peek()) {
				return lx.finishDecimal(start, 0)
			}
		default:
			return lx.finishDecimal(start, 0)
		}
	}

	digitsStart := lx.cursor.Off
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	n, ok := foldDigits(lx.file.Content[digitsStart:lx.cursor.Off], 10)
	if !ok {
		lx.fail(diag.LexBadNumber, start, lx.cursor.SpanFrom(start), "integer literal overflows int64")
		return lx.invalid(start)
	}
	return lx.finishDecimal(start, n)
}

// finishDecimal дочитывает дробную часть или суффикс 'f' после целой части n.
func (lx *Lexer) finishDecimal(start Mark, n int64) token.Token {
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump() // '.'
		v := float32(n)
		weight := float32(0.1)
		for isDec(lx.cursor.Peek()) {
			v += weight * float32(lx.cursor.Bump()-'0')
			weight /= 10
		}
		lx.cursor.Eat('f')
		return lx.emitFloat(start, v)
	}
	if lx.cursor.Eat('f') {
		return lx.emitFloat(start, float32(n))
	}
	return lx.emitInt(start, n)
}

func (lx *Lexer) finishRadix(start Mark, base int64, isDigit func(byte) bool, name string) token.Token {
	digitsStart := lx.cursor.Off
	for isDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	digits := lx.file.Content[digitsStart:lx.cursor.Off]
	// "0x" без цифр это просто 0: "0bar" == Int(0), Ident("ar")
	if len(digits) == 0 {
		return lx.emitInt(start, 0)
	}
	n, ok := foldDigits(digits, base)
	if !ok {
		lx.fail(diag.LexBadNumber, start, lx.cursor.SpanFrom(start), name+" literal overflows int64")
		return lx.invalid(start)
	}
	// для 0x хвостовой 'f' уже съеден как цифра
	if lx.cursor.Eat('f') {
		return lx.emitFloat(start, float32(n))
	}
	return lx.emitInt(start, n)
}

func (lx *Lexer) emitInt(start Mark, n int64) token.Token {
	tok := lx.emit(token.Int, start)
	tok.Int = n
	return tok
}

func (lx *Lexer) emitFloat(start Mark, v float32) token.Token {
	tok := lx.emit(token.Float, start)
	tok.Float = v
	return tok
}

// foldDigits сворачивает уже собранные цифры, начиная со старшего разряда.
func foldDigits(digits []byte, base int64) (int64, bool) {
	var n int64
	for _, d := range digits {
		v := digitVal(d)
		if n > (math.MaxInt64-v)/base {
			return 0, false
		}
		n = n*base + v
	}
	return n, true
}
