package token

var keywords = map[string]Kind{
	"fn":      KwFn,
	"pc":      KwPc,
	"struct":  KwStruct,
	"trait":   KwTrait,
	"enum":    KwEnum,
	"group":   KwGroup,
	"private": KwPrivate,
	"let":     KwLet,
	"const":   KwConst,
	"self":    KwSelf,
	"import":  KwImport,
	"impl":    KwImpl,
	"in":      KwIn,
	"for":     KwFor,
	"while":   KwWhile,
	"if":      KwIf,
	"else":    KwElse,
	"and":     KwAnd,
	"or":      KwOr,
	"not":     KwNot,
	"true":    KwTrue,
	"false":   KwFalse,
	"select":  KwSelect,
	"raise":   KwRaise,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые — только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
