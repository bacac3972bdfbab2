package token

import (
	"fire/internal/source"
)

// Token represents a single source token with its location and payload.
type Token struct {
	Kind  Kind
	Span  source.Span
	Pos   source.LineCol // строка и колонка (в рунах) первого символа
	Text  string         // lexeme, or decoded payload for String/Ident/Type/Annotation
	Int   int64          // valid for Int
	Float float32        // valid for Float
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Int, Float, String, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind <= CloseBracket
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwFn && t.Kind <= KwRaise
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsDeclStart reports whether the token opens a top-level declaration header.
func (t Token) IsDeclStart() bool {
	switch t.Kind {
	case KwFn, KwPc, KwStruct, KwTrait, KwEnum, KwGroup, KwLet, KwConst, KwImpl:
		return true
	default:
		return false
	}
}

// Opens returns the matching closing bracket kind for an opening bracket.
func (k Kind) Opens() (Kind, bool) {
	switch k {
	case OpenParen:
		return CloseParen, true
	case OpenBrace:
		return CloseBrace, true
	case OpenBracket:
		return CloseBracket, true
	default:
		return Invalid, false
	}
}
