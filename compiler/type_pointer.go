package compiler

import "fmt"

const PointerSize = USizeBytes

type pointerType struct {
	addr *Address
}

func newPointerType() *pointerType { return &pointerType{} }

func (t *pointerType) TypeSymbol() TypeSymbol { return TypePointer }
func (t *pointerType) Length() int            { return PointerSize }
func (t *pointerType) Address() Address       { return *t.addr }
func (t *pointerType) SetAddress(a Address)   { t.addr = &a }

func (t *pointerType) AllocateVariable(stack *StackSizes) error {
	if t.addr != nil {
		return fmt.Errorf("internal error: %s is already allocated", t.TypeSymbol())
	}
	a := StackDirectAddress(uint64(stack.IncrementStackSize(PointerSize)))
	t.addr = &a
	return nil
}

func (t *pointerType) GetConstant(lit Literal) (Address, error) {
	if lit.Kind != LitInt {
		return Address{}, fmt.Errorf("literal %s cannot be used as a %s constant", lit, t.TypeSymbol())
	}
	if lit.Int < 0 {
		return Address{}, fmt.Errorf("%d does not fit in a %s (must be non-negative)", lit.Int, t.TypeSymbol())
	}
	return ImmediateAddress(uintBytes(uint64(lit.Int))), nil
}

func (t *pointerType) RuntimeCopyFrom(other Type, memory *MemoryManager) error {
	if other.TypeSymbol() != TypePointer {
		return fmt.Errorf("cannot copy %s into %s", other.TypeSymbol(), t.TypeSymbol())
	}
	EmitCopy(memory, other.Address(), t.Address(), PointerSize)
	return nil
}

func (t *pointerType) RuntimeCopyFromLiteral(lit Literal, memory *MemoryManager) error {
	c, err := t.GetConstant(lit)
	if err != nil {
		return err
	}
	EmitCopy(memory, c, t.Address(), PointerSize)
	return nil
}

var pointerOperators = []operatorEntry{
	{
		op:         OpAdd,
		resultType: func(rhs TypeSymbol) (TypeSymbol, bool) { return typeSymbolIf(rhs == TypePointer, TypePointer) },
		apply: func(lhs, rhs, dest Type, memory *MemoryManager, stack *StackSizes) {
			EmitAdd(memory, lhs.Address(), rhs.Address(), dest.Address(), PointerSize)
		},
	},
	{
		op:         OpSubtract,
		resultType: func(rhs TypeSymbol) (TypeSymbol, bool) { return typeSymbolIf(rhs == TypePointer, TypePointer) },
		// Subtraction emulates two's complement with the instruction
		// set's available primitives: negate rhs bitwise, add one to
		// get its two's complement, then add that to lhs.
		apply: func(lhs, rhs, dest Type, memory *MemoryManager, stack *StackSizes) {
			magic := newPointerType()
			_ = magic.AllocateVariable(stack)
			EmitBinaryNot(memory, rhs.Address(), magic.Address(), PointerSize)
			one := ImmediateAddress(uintBytes(1))
			EmitAdd(memory, magic.Address(), one, magic.Address(), PointerSize)
			EmitAdd(memory, lhs.Address(), magic.Address(), dest.Address(), PointerSize)
		},
	},
	{
		op:         OpEqual,
		resultType: func(rhs TypeSymbol) (TypeSymbol, bool) { return typeSymbolIf(rhs == TypePointer, TypeBoolean) },
		apply: func(lhs, rhs, dest Type, memory *MemoryManager, stack *StackSizes) {
			EmitEquality(memory, lhs.Address(), rhs.Address(), dest.Address(), PointerSize)
		},
	},
	{
		op:         OpNotEqual,
		resultType: func(rhs TypeSymbol) (TypeSymbol, bool) { return typeSymbolIf(rhs == TypePointer, TypeBoolean) },
		apply: func(lhs, rhs, dest Type, memory *MemoryManager, stack *StackSizes) {
			EmitNotEqual(memory, lhs.Address(), rhs.Address(), dest.Address(), PointerSize)
		},
	},
}

func (t *pointerType) PrefixOperatorResultTypes(op Operator) []TypeSymbol { return nil }

func (t *pointerType) OperatorResultTypes(op Operator, rhs TypeSymbol) []TypeSymbol {
	return operatorResultTypes(pointerOperators, op, rhs)
}

func (t *pointerType) OperatePrefix(op Operator, dest Type, memory *MemoryManager, stack *StackSizes) error {
	return operatorNotImplementedError(t.TypeSymbol(), op, nil)
}

func (t *pointerType) Operate(op Operator, rhs Type, dest Type, memory *MemoryManager, stack *StackSizes) error {
	return applyOperator(pointerOperators, op, t, rhs, dest, memory, stack)
}

func (t *pointerType) Duplicate() Type {
	d := newPointerType()
	if t.addr != nil {
		a := *t.addr
		d.addr = &a
	}
	return d
}
