package compiler

type Keyword int

const (
	KeywordBreak Keyword = iota
	KeywordContinue
	KeywordDump
	KeywordViewMemory
	KeywordViewMemoryDecimal
	KeywordAs
	KeywordImport
)

func (k Keyword) CodeRepresentation() string {
	switch k {
	case KeywordBreak:
		return "break"
	case KeywordContinue:
		return "continue"
	case KeywordDump:
		return "dump"
	case KeywordViewMemory:
		return "viewmem"
	case KeywordViewMemoryDecimal:
		return "viewmemdec"
	case KeywordAs:
		return "as"
	case KeywordImport:
		return "import"
	default:
		return "<invalid keyword>"
	}
}

func (k Keyword) String() string { return k.CodeRepresentation() }

var keywordByCode = map[string]Keyword{
	"break": KeywordBreak, "continue": KeywordContinue, "dump": KeywordDump,
	"viewmem": KeywordViewMemory, "viewmemdec": KeywordViewMemoryDecimal,
	"as": KeywordAs, "import": KeywordImport,
}

func KeywordFromCode(code string) (Keyword, bool) {
	k, ok := keywordByCode[code]
	return k, ok
}
