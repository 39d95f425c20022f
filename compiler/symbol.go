package compiler

import "strings"

type SymbolKind int

const (
	SymName SymbolKind = iota
	SymLiteral
	SymOperator
	SymAssigner
	SymKeyword
	SymType
	SymBlock
	SymList
	SymBracketedSection
	SymPunctuation
)

// Symbol is the closed set of lexical forms the compiler reads. It is
// represented as one tagged struct rather than an interface-based sum
// type: every variant's payload is a plain field, selected by Kind, the
// same shape used for the AST node type in the retrieved corpus's Go
// compiler frontend (a Kind discriminator plus flat optional fields
// rather than a type switch over unrelated concrete types).
type Symbol struct {
	Kind SymbolKind

	Name        []string
	Literal     Literal
	Operator    Operator
	Assigner    Assigner
	Keyword     Keyword
	Type        TypeSymbol
	Block       Block
	Punctuation Punctuation
	List        [][]Symbol
	Section     []Symbol
}

func NameSymbol(path ...string) Symbol       { return Symbol{Kind: SymName, Name: path} }
func LiteralSymbol(l Literal) Symbol         { return Symbol{Kind: SymLiteral, Literal: l} }
func OperatorSymbol(o Operator) Symbol       { return Symbol{Kind: SymOperator, Operator: o} }
func AssignerSymbol(a Assigner) Symbol       { return Symbol{Kind: SymAssigner, Assigner: a} }
func KeywordSymbol(k Keyword) Symbol         { return Symbol{Kind: SymKeyword, Keyword: k} }
func TypeSymbolSymbol(t TypeSymbol) Symbol   { return Symbol{Kind: SymType, Type: t} }
func BlockSymbol(b Block) Symbol             { return Symbol{Kind: SymBlock, Block: b} }
func ListSymbol(items [][]Symbol) Symbol     { return Symbol{Kind: SymList, List: items} }
func BracketedSectionSymbol(s []Symbol) Symbol {
	return Symbol{Kind: SymBracketedSection, Section: s}
}
func PunctuationSymbol(p Punctuation) Symbol { return Symbol{Kind: SymPunctuation, Punctuation: p} }

func (s Symbol) String() string {
	switch s.Kind {
	case SymName:
		return strings.Join(s.Name, ".")
	case SymLiteral:
		return s.Literal.String()
	case SymOperator:
		return s.Operator.String()
	case SymAssigner:
		return s.Assigner.String()
	case SymKeyword:
		return s.Keyword.String()
	case SymType:
		return s.Type.String()
	case SymBlock:
		return s.Block.String()
	case SymList:
		return "<list>"
	case SymBracketedSection:
		return "(...)"
	case SymPunctuation:
		return s.Punctuation.String()
	default:
		return "<invalid symbol>"
	}
}
