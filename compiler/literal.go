package compiler

import "fmt"

type LiteralKind int

const (
	LitBool LiteralKind = iota
	LitInt
	LitString
	LitChar
	LitNone
)

// Literal is a lexed constant. Int is stored as int64, so a Pointer
// (usize, 8 bytes, the only implemented type that gives literal
// magnitude any runtime meaning) can be written as a literal only in
// the range 0 to 2^63-1.
type Literal struct {
	Kind LiteralKind
	Bool bool
	Int  int64
	Str  string
	Char rune
}

func BoolLiteral(v bool) Literal    { return Literal{Kind: LitBool, Bool: v} }
func IntLiteral(v int64) Literal    { return Literal{Kind: LitInt, Int: v} }
func StringLiteral(v string) Literal { return Literal{Kind: LitString, Str: v} }
func CharLiteral(v rune) Literal    { return Literal{Kind: LitChar, Char: v} }
func NoneLiteral() Literal          { return Literal{Kind: LitNone} }

func (l Literal) String() string {
	switch l.Kind {
	case LitBool:
		return fmt.Sprintf("%t", l.Bool)
	case LitInt:
		return fmt.Sprintf("%d", l.Int)
	case LitString:
		return fmt.Sprintf("%q", l.Str)
	case LitChar:
		return fmt.Sprintf("%q", l.Char)
	case LitNone:
		return "none"
	default:
		return "<invalid literal>"
	}
}
