package compiler

import "encoding/binary"

// Opcode is one byte identifying an instruction. Values match the wire
// format the runtime package decodes.
type Opcode byte

const (
	OpStackCreate   Opcode = 0
	OpStackUp       Opcode = 1
	OpCopy          Opcode = 3
	OpStackDown     Opcode = 4
	OpDump          Opcode = 5
	OpViewMemory    Opcode = 6
	OpBinaryNot     Opcode = 7
	OpBinaryAnd     Opcode = 8
	OpJumpIfNot     Opcode = 9
	OpJump          Opcode = 10
	OpDynamicJump   Opcode = 11
	OpBinaryOr      Opcode = 12
	OpAdd           Opcode = 13
	OpEquality      Opcode = 14
	OpNotEqual      Opcode = 15
	OpViewMemoryDec Opcode = 16
)

func (o Opcode) String() string {
	switch o {
	case OpStackCreate:
		return "StackCreate"
	case OpStackUp:
		return "StackUp"
	case OpCopy:
		return "Copy"
	case OpStackDown:
		return "StackDown"
	case OpDump:
		return "Dump"
	case OpViewMemory:
		return "ViewMemory"
	case OpBinaryNot:
		return "BinaryNot"
	case OpBinaryAnd:
		return "BinaryAnd"
	case OpJumpIfNot:
		return "JumpIfNot"
	case OpJump:
		return "Jump"
	case OpDynamicJump:
		return "DynamicJump"
	case OpBinaryOr:
		return "BinaryOr"
	case OpAdd:
		return "Add"
	case OpEquality:
		return "Equality"
	case OpNotEqual:
		return "NotEqual"
	case OpViewMemoryDec:
		return "ViewMemoryDec"
	default:
		return "<invalid opcode>"
	}
}

func uintBytes(v uint64) []byte {
	b := make([]byte, USizeBytes)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// StackCreatePatch is the reservation left by EmitStackCreate, filled in
// once the owning frame's final size is known.
type StackCreatePatch struct{ pos int }

func EmitStackCreate(memory *MemoryManager) StackCreatePatch {
	memory.AppendByte(byte(OpStackCreate))
	pos := memory.Reserve(USizeBytes)
	return StackCreatePatch{pos: pos}
}

func (p StackCreatePatch) SetSize(size int, memory *MemoryManager) {
	memory.Overwrite(p.pos, uintBytes(uint64(size)))
}

func EmitStackUp(memory *MemoryManager) {
	memory.AppendByte(byte(OpStackUp))
}

func EmitStackDown(memory *MemoryManager) {
	memory.AppendByte(byte(OpStackDown))
}

// JumpPatch is the reservation left by an unconditional Jump whose
// destination was not yet known at emit time.
type JumpPatch struct{ pos int }

// EmitJump appends a Jump. Pass a negative destination to reserve the
// operand for a later SetDestination call.
func EmitJump(memory *MemoryManager, destination int) JumpPatch {
	memory.AppendByte(byte(OpJump))
	if destination >= 0 {
		pos := memory.Append(uintBytes(uint64(destination)))
		return JumpPatch{pos: pos}
	}
	pos := memory.Reserve(USizeBytes)
	return JumpPatch{pos: pos}
}

func (p JumpPatch) SetDestination(destination int, memory *MemoryManager) {
	memory.Overwrite(p.pos, uintBytes(uint64(destination)))
}

// JumpIfNotPatch is the reservation left by EmitJumpIfNot's destination
// operand.
type JumpIfNotPatch struct{ pos int }

func EmitJumpIfNot(memory *MemoryManager, condition Address) JumpIfNotPatch {
	memory.AppendByte(byte(OpJumpIfNot))
	memory.Append(condition.Bytes())
	pos := memory.Reserve(USizeBytes)
	return JumpIfNotPatch{pos: pos}
}

func (p JumpIfNotPatch) SetDestination(destination int, memory *MemoryManager) {
	memory.Overwrite(p.pos, uintBytes(uint64(destination)))
}

func EmitDynamicJump(memory *MemoryManager, target Address) {
	memory.AppendByte(byte(OpDynamicJump))
	memory.Append(target.Bytes())
}

func EmitCopy(memory *MemoryManager, src, dst Address, length int) {
	memory.AppendByte(byte(OpCopy))
	memory.Append(src.Bytes())
	memory.Append(dst.Bytes())
	memory.Append(uintBytes(uint64(length)))
}

func EmitDump(memory *MemoryManager) {
	memory.AppendByte(byte(OpDump))
}

func EmitViewMemory(memory *MemoryManager, addr Address, length int) {
	memory.AppendByte(byte(OpViewMemory))
	memory.Append(addr.Bytes())
	memory.Append(uintBytes(uint64(length)))
}

func EmitViewMemoryDecimal(memory *MemoryManager, addr Address, length int) {
	memory.AppendByte(byte(OpViewMemoryDec))
	memory.Append(addr.Bytes())
	memory.Append(uintBytes(uint64(length)))
}

func EmitBinaryNot(memory *MemoryManager, src, dst Address, length int) {
	memory.AppendByte(byte(OpBinaryNot))
	memory.Append(src.Bytes())
	memory.Append(dst.Bytes())
	memory.Append(uintBytes(uint64(length)))
}

func EmitBinaryAnd(memory *MemoryManager, lhs, rhs, dst Address, length int) {
	memory.AppendByte(byte(OpBinaryAnd))
	memory.Append(lhs.Bytes())
	memory.Append(rhs.Bytes())
	memory.Append(dst.Bytes())
	memory.Append(uintBytes(uint64(length)))
}

func EmitBinaryOr(memory *MemoryManager, lhs, rhs, dst Address, length int) {
	memory.AppendByte(byte(OpBinaryOr))
	memory.Append(lhs.Bytes())
	memory.Append(rhs.Bytes())
	memory.Append(dst.Bytes())
	memory.Append(uintBytes(uint64(length)))
}

func EmitAdd(memory *MemoryManager, lhs, rhs, dst Address, length int) {
	memory.AppendByte(byte(OpAdd))
	memory.Append(lhs.Bytes())
	memory.Append(rhs.Bytes())
	memory.Append(dst.Bytes())
	memory.Append(uintBytes(uint64(length)))
}

// EmitEquality and EmitNotEqual compare length bytes of lhs against rhs;
// length is the operand width being compared, not the width written to
// dst. The result is always a single Boolean byte, since a comparison
// between two wider operands (e.g. two Pointers) still produces one
// true/false answer - the runtime writes exactly BooleanSize bytes to
// dst regardless of length.
func EmitEquality(memory *MemoryManager, lhs, rhs, dst Address, length int) {
	memory.AppendByte(byte(OpEquality))
	memory.Append(lhs.Bytes())
	memory.Append(rhs.Bytes())
	memory.Append(dst.Bytes())
	memory.Append(uintBytes(uint64(length)))
}

func EmitNotEqual(memory *MemoryManager, lhs, rhs, dst Address, length int) {
	memory.AppendByte(byte(OpNotEqual))
	memory.Append(lhs.Bytes())
	memory.Append(rhs.Bytes())
	memory.Append(dst.Bytes())
	memory.Append(uintBytes(uint64(length)))
}
