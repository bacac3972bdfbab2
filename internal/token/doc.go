// Package token defines lexical token kinds for the Fire compiler.
// Invariants:
//   - Token.Span covers the lexeme in the normalized source (Start..End).
//   - For String, Text is the decoded literal value (escapes applied).
//   - For Annotation, Text is the name without the leading '@'.
//   - Int carries the value of Int tokens, Float the value of Float tokens.
//   - 'Self' is a dedicated SelfType token; other uppercase names are Type.
package token
