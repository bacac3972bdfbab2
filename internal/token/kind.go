package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Multiply represents the multiply operator token.
	Multiply // *
	// Divide represents the divide operator token.
	Divide // /
	// Mod represents the modulo operator token.
	Mod // %
	// And represents the bitwise and operator token.
	And // &
	// Or represents the bitwise or operator token.
	Or // |
	// Not represents the negation operator token.
	Not // !
	// Xor represents the xor operator token.
	Xor // ^
	// StrictAnd represents the logical and operator token.
	StrictAnd // &&
	// StrictOr represents the logical or operator token.
	StrictOr // ||
	// Assign represents the assign operator token.
	Assign // =
	// PlusAssign represents the plus assign operator token.
	PlusAssign // +=
	// MinusAssign represents the minus assign operator token.
	MinusAssign // -=
	// MultiplyAssign represents the multiply assign operator token.
	MultiplyAssign // *=
	// DivideAssign represents the divide assign operator token.
	DivideAssign // /=
	// ModAssign represents the modulo assign operator token.
	ModAssign // %=
	// Increment represents the increment operator token.
	Increment // ++
	// Decrement represents the decrement operator token.
	Decrement // --
	// Equals represents the equality operator token.
	Equals // ==
	// NotEqual represents the inequality operator token.
	NotEqual // !=
	// Greater represents the greater-than operator token.
	Greater // >
	// Less represents the less-than operator token.
	Less // <
	// GreaterEqual represents the greater-or-equal operator token.
	GreaterEqual // >=
	// LessEqual represents the less-or-equal operator token.
	LessEqual // <=
	// FatArrow represents the fat arrow operator token.
	FatArrow // =>

	// Colon represents the colon punctuation token.
	Colon // :
	// Accesser represents the path separator token.
	Accesser // ::
	// Comma represents the comma punctuation token.
	Comma // ,
	// Dot represents the dot punctuation token.
	Dot // .
	// OpenParen represents the left parenthesis token.
	OpenParen // (
	// CloseParen represents the right parenthesis token.
	CloseParen // )
	// OpenBrace represents the left brace token.
	OpenBrace // {
	// CloseBrace represents the right brace token.
	CloseBrace // }
	// OpenBracket represents the left bracket token.
	OpenBracket // [
	// CloseBracket represents the right bracket token.
	CloseBracket // ]

	// String represents a string literal; Text holds the decoded value.
	String
	// Annotation represents an '@name' token; Text holds the name.
	Annotation
	// Ident represents a lowercase-leading identifier.
	Ident
	// Type represents an uppercase-leading type name.
	Type
	// Int represents an integer literal.
	Int
	// Float represents a floating literal.
	Float
	// SelfType represents the 'Self' type name.
	SelfType

	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwPc represents the 'pc' keyword.
	KwPc // pc
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwTrait represents the 'trait' keyword.
	KwTrait // trait
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwGroup represents the 'group' keyword.
	KwGroup // group
	// KwPrivate represents the 'private' keyword.
	KwPrivate // private
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwSelf represents the 'self' keyword.
	KwSelf // self
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwImpl represents the 'impl' keyword.
	KwImpl // impl
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwAnd represents the 'and' keyword.
	KwAnd // and
	// KwOr represents the 'or' keyword.
	KwOr // or
	// KwNot represents the 'not' keyword.
	KwNot // not
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false
	// KwSelect represents the 'select' keyword.
	KwSelect // select
	// KwRaise represents the 'raise' keyword.
	KwRaise // raise

	kindCount
)

var kindNames = [...]string{
	Invalid:        "Invalid",
	EOF:            "EOF",
	Plus:           "Plus",
	Minus:          "Minus",
	Multiply:       "Multiply",
	Divide:         "Divide",
	Mod:            "Mod",
	And:            "And",
	Or:             "Or",
	Not:            "Not",
	Xor:            "Xor",
	StrictAnd:      "StrictAnd",
	StrictOr:       "StrictOr",
	Assign:         "Assign",
	PlusAssign:     "PlusAssign",
	MinusAssign:    "MinusAssign",
	MultiplyAssign: "MultiplyAssign",
	DivideAssign:   "DivideAssign",
	ModAssign:      "ModAssign",
	Increment:      "Increment",
	Decrement:      "Decrement",
	Equals:         "Equals",
	NotEqual:       "NotEqual",
	Greater:        "Greater",
	Less:           "Less",
	GreaterEqual:   "GreaterEqual",
	LessEqual:      "LessEqual",
	FatArrow:       "FatArrow",
	Colon:          "Colon",
	Accesser:       "Accesser",
	Comma:          "Comma",
	Dot:            "Dot",
	OpenParen:      "OpenParen",
	CloseParen:     "CloseParen",
	OpenBrace:      "OpenBrace",
	CloseBrace:     "CloseBrace",
	OpenBracket:    "OpenBracket",
	CloseBracket:   "CloseBracket",
	String:         "String",
	Annotation:     "Annotation",
	Ident:          "Ident",
	Type:           "Type",
	Int:            "Int",
	Float:          "Float",
	SelfType:       "SelfType",
	KwFn:           "KwFn",
	KwPc:           "KwPc",
	KwStruct:       "KwStruct",
	KwTrait:        "KwTrait",
	KwEnum:         "KwEnum",
	KwGroup:        "KwGroup",
	KwPrivate:      "KwPrivate",
	KwLet:          "KwLet",
	KwConst:        "KwConst",
	KwSelf:         "KwSelf",
	KwImport:       "KwImport",
	KwImpl:         "KwImpl",
	KwIn:           "KwIn",
	KwFor:          "KwFor",
	KwWhile:        "KwWhile",
	KwIf:           "KwIf",
	KwElse:         "KwElse",
	KwAnd:          "KwAnd",
	KwOr:           "KwOr",
	KwNot:          "KwNot",
	KwTrue:         "KwTrue",
	KwFalse:        "KwFalse",
	KwSelect:       "KwSelect",
	KwRaise:        "KwRaise",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// ParseKind is the inverse of Kind.String; used when decoding cached token streams.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return Invalid, false
}
