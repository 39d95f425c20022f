package compiler

type TypeSymbol int

const (
	TypeInteger TypeSymbol = iota
	TypeBoolean
	TypeCharacter
	TypePointer
)

func (t TypeSymbol) CodeRepresentation() string {
	switch t {
	case TypeInteger:
		return "int"
	case TypeBoolean:
		return "bool"
	case TypeCharacter:
		return "char"
	case TypePointer:
		return "ptr"
	default:
		return "<invalid type>"
	}
}

func (t TypeSymbol) String() string { return t.CodeRepresentation() }

var typeSymbolByCode = map[string]TypeSymbol{
	"int": TypeInteger, "bool": TypeBoolean, "char": TypeCharacter, "ptr": TypePointer,
}

func TypeSymbolFromCode(code string) (TypeSymbol, bool) {
	t, ok := typeSymbolByCode[code]
	return t, ok
}
