package compiler

import "fmt"

// ReturnOptions controls what type shape an evaluated expression must
// produce, mirroring the four modes a caller can ask for: a specific
// type, one of a closed set, a preferred-but-not-required type used
// only for literal defaulting, or no constraint at all.
type ReturnOptions struct {
	mode     returnMode
	into     TypeSymbol
	oneOf    []TypeSymbol
	prefer   TypeSymbol
	hasPref  bool
}

type returnMode int

const (
	returnIntoType returnMode = iota
	returnOneOfTypes
	returnPreferType
	returnAnyType
)

func IntoType(t TypeSymbol) ReturnOptions { return ReturnOptions{mode: returnIntoType, into: t} }
func OneOfTypes(ts ...TypeSymbol) ReturnOptions {
	return ReturnOptions{mode: returnOneOfTypes, oneOf: ts}
}
func PreferType(t TypeSymbol) ReturnOptions {
	return ReturnOptions{mode: returnPreferType, prefer: t, hasPref: true}
}
func AnyType() ReturnOptions { return ReturnOptions{mode: returnAnyType} }

// preferredType returns the type literal defaulting should lean toward,
// if this mode expresses one.
func (o ReturnOptions) preferredType() *TypeSymbol {
	switch o.mode {
	case returnIntoType:
		t := o.into
		return &t
	case returnPreferType:
		if o.hasPref {
			t := o.prefer
			return &t
		}
	}
	return nil
}

func (o ReturnOptions) accepts(t TypeSymbol) bool {
	switch o.mode {
	case returnIntoType:
		return t == o.into
	case returnOneOfTypes:
		for _, c := range o.oneOf {
			if c == t {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// EvaluateArithmeticIntoType evaluates section as exactly dest's type and
// copies the result into dest, which the caller has already allocated.
func EvaluateArithmeticIntoType(section []Symbol, dest Type, memory *MemoryManager, refs *ReferenceStack, stack *StackSizes) error {
	result, err := evaluateArithmeticSection(section, IntoType(dest.TypeSymbol()), memory, refs, stack)
	if err != nil {
		return err
	}
	return dest.RuntimeCopyFrom(result, memory)
}

// EvaluateArithmeticToTypes evaluates section, requiring the result to
// be one of the given types, and returns the freshly allocated Type
// holding it.
func EvaluateArithmeticToTypes(section []Symbol, memory *MemoryManager, refs *ReferenceStack, stack *StackSizes, types ...TypeSymbol) (Type, error) {
	return evaluateArithmeticSection(section, OneOfTypes(types...), memory, refs, stack)
}

// EvaluateArithmeticToAnyType evaluates section with no type constraint
// beyond a soft literal-defaulting preference.
func EvaluateArithmeticToAnyType(section []Symbol, memory *MemoryManager, refs *ReferenceStack, stack *StackSizes, preferred *TypeSymbol) (Type, error) {
	opts := AnyType()
	if preferred != nil {
		opts = PreferType(*preferred)
	}
	return evaluateArithmeticSection(section, opts, memory, refs, stack)
}

func incorrectTypeForOptionsError(got TypeSymbol, opts ReturnOptions) error {
	switch opts.mode {
	case returnIntoType:
		return incorrectTypeError(got, opts.into)
	case returnOneOfTypes:
		return incorrectTypeError(got, opts.oneOf...)
	default:
		return nil
	}
}

// evaluateArithmeticSection is the core recursive dispatcher. Symbol
// shapes carry no operator precedence of their own: a section of length
// 1 is a single value, length 2 is a prefix operator applied to a
// value, and length 3 is either a binary operator or an `as` cast.
// Anything else is a syntax error the lexer should not have produced.
func evaluateArithmeticSection(section []Symbol, opts ReturnOptions, memory *MemoryManager, refs *ReferenceStack, stack *StackSizes) (Type, error) {
	switch len(section) {
	case 1:
		return handleSingleSymbol(section[0], opts, memory, refs, stack)
	case 2:
		return handlePrefixOperation(section[0], section[1], opts, memory, refs, stack)
	case 3:
		if section[1].Kind == SymKeyword && section[1].Keyword == KeywordAs {
			return handleCasting(section[0], section[2], opts, memory, refs, stack)
		}
		return handleOperation(section[0], section[1], section[2], opts, memory, refs, stack)
	default:
		return nil, fmt.Errorf("malformed expression (%d symbols)", len(section))
	}
}

func handleSingleSymbol(sym Symbol, opts ReturnOptions, memory *MemoryManager, refs *ReferenceStack, stack *StackSizes) (Type, error) {
	switch sym.Kind {
	case SymName:
		ref, err := refs.GetReference(sym.Name)
		if err != nil {
			return nil, err
		}
		v, err := ref.GetVariable()
		if err != nil {
			return nil, err
		}
		if !opts.accepts(v.TypeSymbol()) {
			return nil, incorrectTypeForOptionsError(v.TypeSymbol(), opts)
		}
		return v, nil
	case SymLiteral:
		t, err := DefaultInstantiatedTypeForLiteral(sym.Literal, stack, memory, opts.preferredType())
		if err != nil {
			return nil, err
		}
		if !opts.accepts(t.TypeSymbol()) {
			return nil, incorrectTypeForOptionsError(t.TypeSymbol(), opts)
		}
		return t, nil
	case SymBracketedSection:
		return evaluateArithmeticSection(sym.Section, opts, memory, refs, stack)
	default:
		return nil, fmt.Errorf("%s cannot be used as a value", sym)
	}
}

// subOptions derives the ReturnOptions a sub-evaluation (operand of a
// prefix operator, or either side of a binary one) should see: the
// caller's preferred type still guides literal defaulting even though
// the sub-expression isn't itself constrained to that type, mirroring
// `return_options.get_prefered_type()` feeding into
// `ReturnOptions::PreferType` on both sides in the original evaluator.
func subOptions(opts ReturnOptions) ReturnOptions {
	if pref := opts.preferredType(); pref != nil {
		return PreferType(*pref)
	}
	return AnyType()
}

func handlePrefixOperation(opSym, operand Symbol, opts ReturnOptions, memory *MemoryManager, refs *ReferenceStack, stack *StackSizes) (Type, error) {
	if opSym.Kind != SymOperator {
		return nil, fmt.Errorf("expected a prefix operator, found %s", opSym)
	}
	lhs, err := evaluateArithmeticSection([]Symbol{operand}, subOptions(opts), memory, refs, stack)
	if err != nil {
		return nil, err
	}
	results := lhs.PrefixOperatorResultTypes(opSym.Operator)
	resultType, err := pickResultType(results, opts, lhs.TypeSymbol(), opSym.Operator, nil)
	if err != nil {
		return nil, err
	}
	dest, err := NewUnallocatedType(resultType)
	if err != nil {
		return nil, err
	}
	if err := dest.AllocateVariable(stack); err != nil {
		return nil, err
	}
	if err := lhs.OperatePrefix(opSym.Operator, dest, memory, stack); err != nil {
		return nil, err
	}
	return dest, nil
}

func handleOperation(lhsSym, opSym, rhsSym Symbol, opts ReturnOptions, memory *MemoryManager, refs *ReferenceStack, stack *StackSizes) (Type, error) {
	if opSym.Kind != SymOperator {
		return nil, fmt.Errorf("expected an operator, found %s", opSym)
	}
	lhs, err := evaluateArithmeticSection([]Symbol{lhsSym}, subOptions(opts), memory, refs, stack)
	if err != nil {
		return nil, err
	}
	rhs, err := evaluateArithmeticSection([]Symbol{rhsSym}, subOptions(opts), memory, refs, stack)
	if err != nil {
		return nil, err
	}
	results := lhs.OperatorResultTypes(opSym.Operator, rhs.TypeSymbol())
	rhsType := rhs.TypeSymbol()
	resultType, err := pickResultType(results, opts, lhs.TypeSymbol(), opSym.Operator, &rhsType)
	if err != nil {
		return nil, err
	}
	dest, err := NewUnallocatedType(resultType)
	if err != nil {
		return nil, err
	}
	if err := dest.AllocateVariable(stack); err != nil {
		return nil, err
	}
	if err := lhs.Operate(opSym.Operator, rhs, dest, memory, stack); err != nil {
		return nil, err
	}
	return dest, nil
}

func pickResultType(candidates []TypeSymbol, opts ReturnOptions, lhs TypeSymbol, op Operator, rhs *TypeSymbol) (TypeSymbol, error) {
	if len(candidates) == 0 {
		return 0, operatorNotImplementedError(lhs, op, rhs)
	}
	switch opts.mode {
	case returnIntoType:
		for _, c := range candidates {
			if c == opts.into {
				return c, nil
			}
		}
		return 0, incorrectTypeError(candidates[0], opts.into)
	case returnOneOfTypes:
		for _, c := range candidates {
			for _, want := range opts.oneOf {
				if c == want {
					return c, nil
				}
			}
		}
		return 0, incorrectTypeError(candidates[0], opts.oneOf...)
	default:
		return candidates[0], nil
	}
}

// handleCasting implements `expr as type`. Casting a literal reinterprets
// it directly as the target type's constant; casting a non-literal value
// allocates a fresh variable of the target type and runtime-copies into
// it. If the source already has the requested type and opts.mode is
// returnIntoType, the cast degenerates into a plain evaluation.
func handleCasting(exprSym, typeSym Symbol, opts ReturnOptions, memory *MemoryManager, refs *ReferenceStack, stack *StackSizes) (Type, error) {
	if typeSym.Kind != SymType {
		return nil, fmt.Errorf("expected a type after 'as', found %s", typeSym)
	}
	target := typeSym.Type

	if lit, ok := literalSymbol(exprSym); ok {
		t, err := NewUnallocatedType(target)
		if err != nil {
			return nil, err
		}
		if err := t.AllocateVariable(stack); err != nil {
			return nil, err
		}
		if err := t.RuntimeCopyFromLiteral(lit, memory); err != nil {
			return nil, err
		}
		if !opts.accepts(t.TypeSymbol()) {
			return nil, incorrectTypeForOptionsError(t.TypeSymbol(), opts)
		}
		return t, nil
	}

	src, err := evaluateArithmeticSection([]Symbol{exprSym}, AnyType(), memory, refs, stack)
	if err != nil {
		return nil, err
	}
	if src.TypeSymbol() == target && opts.mode == returnIntoType {
		return src, nil
	}
	dest, err := NewUnallocatedType(target)
	if err != nil {
		return nil, err
	}
	if err := dest.AllocateVariable(stack); err != nil {
		return nil, err
	}
	if err := dest.RuntimeCopyFrom(src, memory); err != nil {
		return nil, err
	}
	if !opts.accepts(dest.TypeSymbol()) {
		return nil, incorrectTypeForOptionsError(dest.TypeSymbol(), opts)
	}
	return dest, nil
}

func literalSymbol(s Symbol) (Literal, bool) {
	if s.Kind == SymLiteral {
		return s.Literal, true
	}
	if s.Kind == SymBracketedSection && len(s.Section) == 1 && s.Section[0].Kind == SymLiteral {
		return s.Section[0].Literal, true
	}
	return Literal{}, false
}
