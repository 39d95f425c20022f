package compiler

import "encoding/binary"

// USizeBytes is the width, in bytes, of every address operand and stack
// offset in the bytecode this package emits. The instruction set has no
// notion of a variable-width platform pointer; eight bytes is fixed.
const USizeBytes = 8

// AddressMode identifies which of the seven address kinds a value is.
type AddressMode byte

const (
	Immediate AddressMode = 0
	// tags 1, 4 and 7 are unused (the original byte tags leave a gap
	// before each direct/indirect pair; kept for wire compatibility)
	StackDirect      AddressMode = 2
	StackIndirect    AddressMode = 3
	HeapDirect       AddressMode = 5
	HeapIndirect     AddressMode = 6
	ProgramDirect    AddressMode = 8
	ProgramIndirect  AddressMode = 9
)

func (m AddressMode) String() string {
	switch m {
	case Immediate:
		return "immediate"
	case StackDirect:
		return "stack-direct"
	case StackIndirect:
		return "stack-indirect"
	case HeapDirect:
		return "heap-direct"
	case HeapIndirect:
		return "heap-indirect"
	case ProgramDirect:
		return "program-direct"
	case ProgramIndirect:
		return "program-indirect"
	default:
		return "unknown-address-mode"
	}
}

// Address is the closed set of places a value can live: embedded in the
// instruction stream itself, or reachable through the stack, heap or
// program buffer, directly or through one level of indirection.
type Address struct {
	Mode      AddressMode
	Offset    uint64
	Immediate []byte
}

// ImmediateAddress embeds data directly in the instruction stream. The
// payload is always zero-padded (or truncated) to USizeBytes so every
// address - immediate or not - occupies the same width on the wire; an
// operation's separate length operand, not the address encoding, says
// how many of those bytes actually matter (e.g. 1 for a boolean).
func ImmediateAddress(data []byte) Address {
	cp := make([]byte, USizeBytes)
	copy(cp, data)
	return Address{Mode: Immediate, Immediate: cp}
}

func StackDirectAddress(offset uint64) Address   { return Address{Mode: StackDirect, Offset: offset} }
func StackIndirectAddress(offset uint64) Address { return Address{Mode: StackIndirect, Offset: offset} }
func HeapDirectAddress(offset uint64) Address    { return Address{Mode: HeapDirect, Offset: offset} }
func HeapIndirectAddress(offset uint64) Address  { return Address{Mode: HeapIndirect, Offset: offset} }
func ProgramDirectAddress(offset uint64) Address { return Address{Mode: ProgramDirect, Offset: offset} }
func ProgramIndirectAddress(offset uint64) Address {
	return Address{Mode: ProgramIndirect, Offset: offset}
}

// Bytes serializes the address the way it is written into the program
// buffer: one tag byte, followed either by the raw immediate payload or
// by the little-endian offset.
func (a Address) Bytes() []byte {
	out := make([]byte, 0, 1+USizeBytes)
	out = append(out, byte(a.Mode))
	if a.Mode == Immediate {
		payload := make([]byte, USizeBytes)
		copy(payload, a.Immediate)
		return append(out, payload...)
	}
	offset := make([]byte, USizeBytes)
	binary.LittleEndian.PutUint64(offset, a.Offset)
	return append(out, offset...)
}

// AddressWireSize is the fixed number of bytes every encoded address
// occupies: one tag byte plus an 8-byte payload, whether that payload is
// an immediate value or a stack/heap/program offset.
const AddressWireSize = 1 + USizeBytes

// DecodeAddress reads one fixed-width address from data starting at
// offset 0 and returns it along with the number of bytes consumed
// (always AddressWireSize on success).
func DecodeAddress(data []byte) (Address, int, error) {
	if len(data) < AddressWireSize {
		return Address{}, 0, errShortRead("address")
	}
	mode := AddressMode(data[0])
	if mode == Immediate {
		payload := make([]byte, USizeBytes)
		copy(payload, data[1:AddressWireSize])
		return Address{Mode: Immediate, Immediate: payload}, AddressWireSize, nil
	}
	offset := binary.LittleEndian.Uint64(data[1:AddressWireSize])
	return Address{Mode: mode, Offset: offset}, AddressWireSize, nil
}

func (a Address) String() string {
	if a.Mode == Immediate {
		return "immediate"
	}
	return a.Mode.String()
}
