package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnknownEscape            Code = 1006

	// Ввод-вывод
	IOInfo           Code = 4000
	IOFileUnreadable Code = 4001
	IOFileError      Code = 4002

	// Форма проекта
	PrjInfo          Code = 5000
	PrjNotDir        Code = 5001
	PrjMissingSrc    Code = 5002
	PrjEmptySrc      Code = 5003
	PrjMissingTarget Code = 5004
	PrjBadManifest   Code = 5005

	// Таблица ресурсов
	ResInfo      Code = 6000
	ResDuplicate Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unrecognized token",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	LexUnknownEscape:            "Unrecognized escape sequence",
	IOInfo:                      "I/O information",
	IOFileUnreadable:            "File cannot be read",
	IOFileError:                 "File I/O failure",
	PrjInfo:                     "Project information",
	PrjNotDir:                   "Project path is not a directory",
	PrjMissingSrc:               "Project has no src directory",
	PrjEmptySrc:                 "Project src directory is empty",
	PrjMissingTarget:            "Project has no target directory",
	PrjBadManifest:              "Malformed fire.toml",
	ResInfo:                     "Resource table information",
	ResDuplicate:                "Duplicate resource",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("RES%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Fatal reports whether the code halts the unit of work that raised it.
// Every Fire front-end error is fatal; info codes are not.
func (c Code) Fatal() bool {
	switch c {
	case LexInfo, IOInfo, PrjInfo, ResInfo:
		return false
	}
	return true
}
