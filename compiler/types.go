package compiler

import "fmt"

// Type is a runtime-representable value type: something that can be
// allocated a home in the current stack frame, produced from a literal,
// copied, and combined with operators. Only Boolean and Pointer have a
// concrete implementation; Integer and Character are recognized type
// symbols whose instantiation deliberately fails (see DESIGN.md).
type Type interface {
	TypeSymbol() TypeSymbol
	Length() int
	Address() Address
	SetAddress(Address)

	AllocateVariable(stack *StackSizes) error
	GetConstant(lit Literal) (Address, error)
	RuntimeCopyFrom(other Type, memory *MemoryManager) error
	RuntimeCopyFromLiteral(lit Literal, memory *MemoryManager) error

	PrefixOperatorResultTypes(op Operator) []TypeSymbol
	OperatorResultTypes(op Operator, rhs TypeSymbol) []TypeSymbol
	OperatePrefix(op Operator, dest Type, memory *MemoryManager, stack *StackSizes) error
	Operate(op Operator, rhs Type, dest Type, memory *MemoryManager, stack *StackSizes) error

	Duplicate() Type
}

// operatorEntry and prefixOperatorEntry model one row of a type's
// operator table. Tables are scanned in declaration order and the first
// matching row wins, mirroring the original's per-type operator vector
// dispatch: order is part of the contract, not an implementation detail.
type operatorEntry struct {
	op         Operator
	resultType func(rhs TypeSymbol) (TypeSymbol, bool)
	apply      func(lhs, rhs, dest Type, memory *MemoryManager, stack *StackSizes)
}

type prefixOperatorEntry struct {
	op         Operator
	resultType TypeSymbol
	apply      func(lhs, dest Type, memory *MemoryManager, stack *StackSizes)
}

func operatorResultTypes(entries []operatorEntry, op Operator, rhs TypeSymbol) []TypeSymbol {
	var out []TypeSymbol
	for _, e := range entries {
		if e.op != op {
			continue
		}
		if rt, ok := e.resultType(rhs); ok {
			out = append(out, rt)
		}
	}
	return out
}

func prefixOperatorResultTypes(entries []prefixOperatorEntry, op Operator) []TypeSymbol {
	var out []TypeSymbol
	for _, e := range entries {
		if e.op == op {
			out = append(out, e.resultType)
		}
	}
	return out
}

func applyOperator(entries []operatorEntry, op Operator, lhs, rhs, dest Type, memory *MemoryManager, stack *StackSizes) error {
	for _, e := range entries {
		if e.op != op {
			continue
		}
		if _, ok := e.resultType(rhs.TypeSymbol()); ok {
			e.apply(lhs, rhs, dest, memory, stack)
			return nil
		}
	}
	rhsSym := rhs.TypeSymbol()
	return operatorNotImplementedError(lhs.TypeSymbol(), op, &rhsSym)
}

func applyPrefixOperator(entries []prefixOperatorEntry, op Operator, lhs, dest Type, memory *MemoryManager, stack *StackSizes) error {
	for _, e := range entries {
		if e.op == op {
			e.apply(lhs, dest, memory, stack)
			return nil
		}
	}
	return operatorNotImplementedError(lhs.TypeSymbol(), op, nil)
}

// NewUnallocatedType constructs a fresh, address-less Type for sym.
func NewUnallocatedType(sym TypeSymbol) (Type, error) {
	switch sym {
	case TypeBoolean:
		return newBooleanType(), nil
	case TypePointer:
		return newPointerType(), nil
	default:
		return nil, fmt.Errorf("type %s is not implemented", sym)
	}
}

// DefaultTypeForLiteral chooses which type a bare literal defaults to
// when no explicit type annotation is present. Integer literals default
// to Pointer only when the caller has a preferred type of Pointer in
// scope (e.g. the left-hand side of an assignment); otherwise they
// default to Integer, which is a stub and will fail at instantiation.
func DefaultTypeForLiteral(lit Literal, preferred *TypeSymbol) (TypeSymbol, error) {
	switch lit.Kind {
	case LitBool:
		return TypeBoolean, nil
	case LitInt:
		if preferred != nil && *preferred == TypePointer {
			return TypePointer, nil
		}
		return TypeInteger, nil
	default:
		return 0, fmt.Errorf("%s has no default type; use 'as' to cast it", lit)
	}
}

// DefaultInstantiatedTypeForLiteral allocates and initializes the
// default type for lit in one step.
func DefaultInstantiatedTypeForLiteral(lit Literal, stack *StackSizes, memory *MemoryManager, preferred *TypeSymbol) (Type, error) {
	sym, err := DefaultTypeForLiteral(lit, preferred)
	if err != nil {
		return nil, err
	}
	t, err := NewUnallocatedType(sym)
	if err != nil {
		return nil, err
	}
	if err := t.AllocateVariable(stack); err != nil {
		return nil, err
	}
	if err := t.RuntimeCopyFromLiteral(lit, memory); err != nil {
		return nil, err
	}
	return t, nil
}
