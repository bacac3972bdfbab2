package lexer

import (
	"fmt"

	"fire/internal/source"

	"fortio.org/safecast"
)

// Cursor представляет собой позицию в файле.
// Помимо байтового смещения ведёт строку (с 1) и колонку
// (0 в начале строки, +1 на каждый прочитанный символ, в рунах).
type Cursor struct {
	File *source.File
	Off  uint32
	Line uint32
	Col  uint32
	// Limit is the exclusive upper bound for Off; defaults to len(File.Content).
	Limit uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		File:  f,
		Off:   0,
		Line:  1,
		Col:   0,
		Limit: limit,
	}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Peek2 читает текущий и следующий байт, если есть, иначе возвращает 0, 0, false
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт.
// Продолжение UTF-8 последовательности колонку не двигает.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	switch {
	case b == '\n':
		c.Line++
		c.Col = 0
	case b&0xC0 != 0x80:
		c.Col++
	}
	return b
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Bump()
		return true
	}
	return false
}

// SkipToEnd moves the cursor past the last byte, keeping Line and Col in sync.
func (c *Cursor) SkipToEnd() {
	for !c.EOF() {
		c.Bump()
	}
}

// Mark это метка, что бы быстро получать Span и позицию читаемого фрагмента
type Mark struct {
	Off  uint32
	Line uint32
	Col  uint32
}

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark{Off: c.Off, Line: c.Line, Col: c.Col}
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: m.Off,
		End:   c.Off,
	}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = m.Off
	c.Line = m.Line
	c.Col = m.Col
}

// Pos возвращает позицию символа, стоящего сразу после метки:
// колонка считается уже с учётом этого символа, как при его чтении.
func (m Mark) Pos() source.LineCol {
	return source.LineCol{Line: m.Line, Col: m.Col + 1}
}
