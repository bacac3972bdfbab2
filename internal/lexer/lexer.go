package lexer

import (
	"fire/internal/diag"
	"fire/internal/source"
	"fire/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
	err    *diag.Diagnostic
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий значимый токен.
// После EOF или первой диагностики всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
			Pos:  lx.cursor.Mark().Pos(),
		}
	}

	ch := lx.cursor.Peek()
	switch {
	case isLower(ch):
		return lx.scanIdentOrKeyword()
	case isUpper(ch):
		return lx.scanTypeName()
	case ch == '@':
		return lx.scanAnnotation()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"' || ch == '\'':
		return lx.scanString()
	default:
		// операторы, пунктуация и всё нераспознанное
		return lx.scanOperatorOrPunct()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Err returns the diagnostic that stopped the lexer, if any.
func (lx *Lexer) Err() *diag.Diagnostic {
	return lx.err
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: k,
		Span: sp,
		Pos:  start.Pos(),
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

func (lx *Lexer) invalid(start Mark) token.Token {
	return token.Token{Kind: token.Invalid, Span: lx.cursor.SpanFrom(start), Pos: start.Pos()}
}

// Tokenize lexes the whole file. It either returns every token (EOF excluded)
// or nil and the first diagnostic; partial sequences are never returned.
func Tokenize(file *source.File, opts Options) ([]token.Token, error) {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		toks = append(toks, tok)
	}
	if lx.err != nil {
		return nil, lx.err
	}
	return toks, nil
}
