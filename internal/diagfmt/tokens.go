package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"fire/internal/source"
	"fire/internal/token"
)

type TokenOutput struct {
	Kind  string   `json:"kind"`
	Text  string   `json:"text,omitempty"`
	Int   *int64   `json:"int,omitempty"`
	Float *float32 `json:"float,omitempty"`
	Line  uint32   `json:"line"`
	Col   uint32   `json:"col"`
	Start uint32   `json:"start"`
	End   uint32   `json:"end"`
}

// FormatTokensPretty выводит токены по одному на строку.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		_, endPos := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		switch tok.Kind {
		case token.Int:
			fmt.Fprintf(w, " %d", tok.Int)
		case token.Float:
			fmt.Fprintf(w, " %g", tok.Float)
		case token.EOF, token.Invalid:
		default:
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n", tok.Pos.Line, tok.Pos.Col, endPos.Line, endPos.Col)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены JSON-массивом.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Line:  tok.Pos.Line,
			Col:   tok.Pos.Col,
			Start: tok.Span.Start,
			End:   tok.Span.End,
		}
		switch tok.Kind {
		case token.Int:
			v := tok.Int
			out.Int = &v
		case token.Float:
			v := tok.Float
			out.Float = &v
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
