package resource

import "fmt"

// Kind classifies a declaration stub.
type Kind uint8

const (
	Function       Kind = iota // свободная функция
	Method                     // метод структуры (struct или impl)
	AbstractMethod             // метод трейта без тела
	Process                    // pc: процедура с побочными эффектами
	Struct
	Trait
	Enum
	Var       // let/const верхнего уровня
	EnumConst // элемент enum
)

var kindNames = [...]string{
	Function:       "function",
	Method:         "method",
	AbstractMethod: "abstract-method",
	Process:        "process",
	Struct:         "struct",
	Trait:          "trait",
	Enum:           "enum",
	Var:            "var",
	EnumConst:      "enum-const",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsType reports whether the kind introduces a namespace of its own members.
func (k Kind) IsType() bool {
	return k == Struct || k == Trait || k == Enum
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for i, n := range kindNames {
		if n == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown resource kind %q", b)
}
