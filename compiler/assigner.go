package compiler

type Assigner int

const (
	AssignSet Assigner = iota
	AssignAddSet
	AssignSubtractSet
	AssignProductSet
	AssignDivideSet
)

func (a Assigner) CodeRepresentation() string {
	switch a {
	case AssignSet:
		return "="
	case AssignAddSet:
		return "+="
	case AssignSubtractSet:
		return "-="
	case AssignProductSet:
		return "*="
	case AssignDivideSet:
		return "/="
	default:
		return "<invalid assigner>"
	}
}

func (a Assigner) String() string { return a.CodeRepresentation() }

func (a Assigner) operator() (Operator, bool) {
	switch a {
	case AssignAddSet:
		return OpAdd, true
	case AssignSubtractSet:
		return OpSubtract, true
	case AssignProductSet:
		return OpProduct, true
	case AssignDivideSet:
		return OpDivide, true
	default:
		return 0, false
	}
}

// Expand turns `lhs += rhs...` into the equivalent `lhs = lhs + (rhs...)`
// expression shape the arithmetic evaluator understands. A plain `=`
// passes the right-hand side through unchanged.
func (a Assigner) Expand(lhs Symbol, rhs []Symbol) []Symbol {
	op, ok := a.operator()
	if !ok {
		return rhs
	}
	return []Symbol{lhs, OperatorSymbol(op), BracketedSectionSymbol(rhs)}
}

var assignerByCode = map[string]Assigner{
	"=": AssignSet, "+=": AssignAddSet, "-=": AssignSubtractSet,
	"*=": AssignProductSet, "/=": AssignDivideSet,
}

func AssignerFromCode(code string) (Assigner, bool) {
	a, ok := assignerByCode[code]
	return a, ok
}
