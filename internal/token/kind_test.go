package token_test

import (
	"testing"

	"fire/internal/source"
	"fire/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{token.Int, token.Float, token.String, token.KwTrue, token.KwFalse}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwLet, token.Plus, token.OpenParen, token.Type}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunctOrOp(t *testing.T) {
	ops := []token.Kind{
		token.Plus, token.Minus, token.Multiply, token.Divide, token.Mod,
		token.And, token.Or, token.Not, token.Xor, token.StrictAnd, token.StrictOr,
		token.Assign, token.PlusAssign, token.MinusAssign, token.MultiplyAssign,
		token.DivideAssign, token.ModAssign, token.Increment, token.Decrement,
		token.Equals, token.NotEqual, token.Greater, token.Less,
		token.GreaterEqual, token.LessEqual, token.FatArrow,
		token.Colon, token.Accesser, token.Comma, token.Dot,
		token.OpenParen, token.CloseParen, token.OpenBrace, token.CloseBrace,
		token.OpenBracket, token.CloseBracket,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwIf, token.Int, token.EOF, token.String}
	for _, k := range non {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	keywords := []token.Kind{
		token.KwFn, token.KwPc, token.KwStruct, token.KwTrait, token.KwEnum,
		token.KwGroup, token.KwPrivate, token.KwLet, token.KwConst, token.KwSelf,
		token.KwImport, token.KwImpl, token.KwIn, token.KwFor, token.KwWhile,
		token.KwIf, token.KwElse, token.KwAnd, token.KwOr, token.KwNot,
		token.KwTrue, token.KwFalse, token.KwSelect, token.KwRaise,
	}
	for _, k := range keywords {
		if !tok(k).IsKeyword() {
			t.Fatalf("%v should be keyword", k)
		}
	}
	if tok(token.SelfType).IsKeyword() {
		t.Fatalf("SelfType must not be keyword")
	}
}

func TestIsIdent(t *testing.T) {
	if !tok(token.Ident).IsIdent() {
		t.Fatalf("Ident should be ident")
	}
	if tok(token.KwFn).IsIdent() {
		t.Fatalf("KwFn must not be ident")
	}
}

func TestKindStringRoundTrip(t *testing.T) {
	for k := token.Invalid; k <= token.KwRaise; k++ {
		name := k.String()
		if name == "" || name == "Kind(?)" {
			t.Fatalf("kind %d has no name", k)
		}
		back, ok := token.ParseKind(name)
		if !ok || back != k {
			t.Fatalf("ParseKind(%q) = %v,%v; want %v", name, back, ok, k)
		}
	}
	if _, ok := token.ParseKind("Nope"); ok {
		t.Fatalf("ParseKind must reject unknown names")
	}
}

func TestOpens(t *testing.T) {
	pairs := map[token.Kind]token.Kind{
		token.OpenParen:   token.CloseParen,
		token.OpenBrace:   token.CloseBrace,
		token.OpenBracket: token.CloseBracket,
	}
	for open, want := range pairs {
		got, ok := open.Opens()
		if !ok || got != want {
			t.Fatalf("%v.Opens() = %v,%v", open, got, ok)
		}
	}
	if _, ok := token.CloseBrace.Opens(); ok {
		t.Fatalf("CloseBrace must not open anything")
	}
}
