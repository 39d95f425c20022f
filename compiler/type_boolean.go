package compiler

import "fmt"

const (
	BoolTrue    byte = 0xFF
	BoolFalse   byte = 0x00
	BooleanSize      = 1
)

type booleanType struct {
	addr *Address
}

func newBooleanType() *booleanType { return &booleanType{} }

func (t *booleanType) TypeSymbol() TypeSymbol { return TypeBoolean }
func (t *booleanType) Length() int            { return BooleanSize }

func (t *booleanType) Address() Address {
	return *t.addr
}

func (t *booleanType) SetAddress(a Address) { t.addr = &a }

func (t *booleanType) AllocateVariable(stack *StackSizes) error {
	if t.addr != nil {
		return fmt.Errorf("internal error: %s is already allocated", t.TypeSymbol())
	}
	a := StackDirectAddress(uint64(stack.IncrementStackSize(BooleanSize)))
	t.addr = &a
	return nil
}

func (t *booleanType) GetConstant(lit Literal) (Address, error) {
	switch lit.Kind {
	case LitBool:
		if lit.Bool {
			return ImmediateAddress([]byte{BoolTrue}), nil
		}
		return ImmediateAddress([]byte{BoolFalse}), nil
	case LitInt:
		if lit.Int == 0 {
			return ImmediateAddress([]byte{BoolFalse}), nil
		}
		return ImmediateAddress([]byte{BoolTrue}), nil
	default:
		return Address{}, fmt.Errorf("literal %s cannot be used as a %s constant", lit, t.TypeSymbol())
	}
}

func (t *booleanType) RuntimeCopyFrom(other Type, memory *MemoryManager) error {
	if other.TypeSymbol() != TypeBoolean {
		return fmt.Errorf("cannot copy %s into %s", other.TypeSymbol(), t.TypeSymbol())
	}
	EmitCopy(memory, other.Address(), t.Address(), BooleanSize)
	return nil
}

func (t *booleanType) RuntimeCopyFromLiteral(lit Literal, memory *MemoryManager) error {
	c, err := t.GetConstant(lit)
	if err != nil {
		return err
	}
	EmitCopy(memory, c, t.Address(), BooleanSize)
	return nil
}

var booleanPrefixOperators = []prefixOperatorEntry{
	{
		op:         OpNot,
		resultType: TypeBoolean,
		apply: func(lhs, dest Type, memory *MemoryManager, stack *StackSizes) {
			EmitBinaryNot(memory, lhs.Address(), dest.Address(), BooleanSize)
		},
	},
}

var booleanOperators = []operatorEntry{
	{
		op:         OpAnd,
		resultType: func(rhs TypeSymbol) (TypeSymbol, bool) { return typeSymbolIf(rhs == TypeBoolean, TypeBoolean) },
		apply: func(lhs, rhs, dest Type, memory *MemoryManager, stack *StackSizes) {
			EmitBinaryAnd(memory, lhs.Address(), rhs.Address(), dest.Address(), BooleanSize)
		},
	},
	{
		op:         OpOr,
		resultType: func(rhs TypeSymbol) (TypeSymbol, bool) { return typeSymbolIf(rhs == TypeBoolean, TypeBoolean) },
		apply: func(lhs, rhs, dest Type, memory *MemoryManager, stack *StackSizes) {
			EmitBinaryOr(memory, lhs.Address(), rhs.Address(), dest.Address(), BooleanSize)
		},
	},
	{
		op:         OpEqual,
		resultType: func(rhs TypeSymbol) (TypeSymbol, bool) { return typeSymbolIf(rhs == TypeBoolean, TypeBoolean) },
		apply: func(lhs, rhs, dest Type, memory *MemoryManager, stack *StackSizes) {
			EmitEquality(memory, lhs.Address(), rhs.Address(), dest.Address(), BooleanSize)
		},
	},
	{
		op:         OpNotEqual,
		resultType: func(rhs TypeSymbol) (TypeSymbol, bool) { return typeSymbolIf(rhs == TypeBoolean, TypeBoolean) },
		apply: func(lhs, rhs, dest Type, memory *MemoryManager, stack *StackSizes) {
			EmitNotEqual(memory, lhs.Address(), rhs.Address(), dest.Address(), BooleanSize)
		},
	},
}

func typeSymbolIf(cond bool, t TypeSymbol) (TypeSymbol, bool) {
	if cond {
		return t, true
	}
	return 0, false
}

func (t *booleanType) PrefixOperatorResultTypes(op Operator) []TypeSymbol {
	return prefixOperatorResultTypes(booleanPrefixOperators, op)
}

func (t *booleanType) OperatorResultTypes(op Operator, rhs TypeSymbol) []TypeSymbol {
	return operatorResultTypes(booleanOperators, op, rhs)
}

func (t *booleanType) OperatePrefix(op Operator, dest Type, memory *MemoryManager, stack *StackSizes) error {
	return applyPrefixOperator(booleanPrefixOperators, op, t, dest, memory, stack)
}

func (t *booleanType) Operate(op Operator, rhs Type, dest Type, memory *MemoryManager, stack *StackSizes) error {
	return applyOperator(booleanOperators, op, t, rhs, dest, memory, stack)
}

func (t *booleanType) Duplicate() Type {
	d := newBooleanType()
	if t.addr != nil {
		a := *t.addr
		d.addr = &a
	}
	return d
}
