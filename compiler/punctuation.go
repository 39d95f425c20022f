package compiler

type Punctuation int

const (
	PunctListSeparator Punctuation = iota
)

func (p Punctuation) CodeRepresentation() string {
	switch p {
	case PunctListSeparator:
		return ","
	default:
		return "<invalid punctuation>"
	}
}

func (p Punctuation) String() string { return p.CodeRepresentation() }
