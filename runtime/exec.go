package runtime

import (
	"fmt"

	"github.com/Robert-M-Lucas/whython-6/compiler"
)

// readProgramUint64 reads a little-endian 8-byte operand at pc without
// bounds-checking; callers run inside the recover-based fault handler
// installed by Run, matching the teacher's "index past the end panics,
// recover turns it into a clean error" style.
func (m *Machine) readProgramUint64(pc int) uint64 {
	return uint64At(m.program[pc : pc+compiler.USizeBytes])
}

func (m *Machine) readAddress(pc int) (compiler.Address, int) {
	addr, n, err := compiler.DecodeAddress(m.program[pc:])
	if err != nil {
		panic(err)
	}
	return addr, n
}

// step executes exactly one instruction, advancing pc. It panics on any
// out-of-range access; Run's recover wraps that into errSegmentationFault
// unless m.errcode was already set to something more specific.
func (m *Machine) step() {
	if m.pc < 0 || m.pc >= len(m.program) {
		m.errcode = errProgramFinished
		return
	}

	op := compiler.Opcode(m.program[m.pc])
	pc := m.pc + 1

	switch op {
	case compiler.OpStackCreate:
		m.pendingFrameSize = int(m.readProgramUint64(pc))
		pc += compiler.USizeBytes

	case compiler.OpStackUp:
		base := m.stackTop
		if base+m.pendingFrameSize > len(m.stack) {
			m.errcode = errStackOverflow
			return
		}
		m.frameBases = append(m.frameBases, base)
		m.stackTop = base + m.pendingFrameSize

	case compiler.OpStackDown:
		if len(m.frameBases) == 0 {
			m.errcode = errSegmentationFault
			return
		}
		last := len(m.frameBases) - 1
		m.stackTop = m.frameBases[last]
		m.frameBases = m.frameBases[:last]

	case compiler.OpCopy:
		src, n := m.readAddress(pc)
		pc += n
		dst, n := m.readAddress(pc)
		pc += n
		length := int(m.readProgramUint64(pc))
		pc += compiler.USizeBytes
		value, err := m.readValue(src, length)
		if err != nil {
			m.errcode = err
			return
		}
		if err := m.writeValue(dst, value); err != nil {
			m.errcode = err
			return
		}

	case compiler.OpDump:
		m.dumpStack()

	case compiler.OpViewMemory:
		addr, n := m.readAddress(pc)
		pc += n
		length := int(m.readProgramUint64(pc))
		pc += compiler.USizeBytes
		if err := m.viewMemory(addr, length, false); err != nil {
			m.errcode = err
			return
		}

	case compiler.OpViewMemoryDec:
		addr, n := m.readAddress(pc)
		pc += n
		length := int(m.readProgramUint64(pc))
		pc += compiler.USizeBytes
		if err := m.viewMemory(addr, length, true); err != nil {
			m.errcode = err
			return
		}

	case compiler.OpBinaryNot:
		pc = m.execUnary(pc, func(v []byte) {
			for i := range v {
				v[i] = ^v[i]
			}
		})

	case compiler.OpBinaryAnd:
		pc = m.execBinary(pc, func(a, b []byte) {
			for i := range b {
				b[i] &= a[i]
			}
		})

	case compiler.OpBinaryOr:
		pc = m.execBinary(pc, func(a, b []byte) {
			for i := range b {
				b[i] |= a[i]
			}
		})

	case compiler.OpAdd:
		pc = m.execBinary(pc, addBytesLE)

	case compiler.OpEquality:
		pc = m.execCompare(pc, bytesEqual)

	case compiler.OpNotEqual:
		pc = m.execCompare(pc, func(a, b []byte) bool { return !bytesEqual(a, b) })

	case compiler.OpJumpIfNot:
		cond, n := m.readAddress(pc)
		pc += n
		dest := int(m.readProgramUint64(pc))
		pc += compiler.USizeBytes
		value, err := m.readValue(cond, 1)
		if err != nil {
			m.errcode = err
			return
		}
		if value[0] == 0 {
			pc = dest
		}

	case compiler.OpJump:
		pc = int(m.readProgramUint64(pc))

	case compiler.OpDynamicJump:
		target, n := m.readAddress(pc)
		pc += n
		value, err := m.readValue(target, compiler.USizeBytes)
		if err != nil {
			m.errcode = err
			return
		}
		pc = int(uint64At(value))

	default:
		m.errcode = errUnknownOpcode
		return
	}

	m.pc = pc
}

func (m *Machine) execUnary(pc int, apply func(v []byte)) int {
	src, n := m.readAddress(pc)
	pc += n
	dst, n := m.readAddress(pc)
	pc += n
	length := int(m.readProgramUint64(pc))
	pc += compiler.USizeBytes

	srcVal, err := m.readValue(src, length)
	if err != nil {
		m.errcode = err
		return pc
	}
	apply(srcVal)
	if err := m.writeValue(dst, srcVal); err != nil {
		m.errcode = err
	}
	return pc
}

func (m *Machine) execBinary(pc int, apply func(a, b []byte)) int {
	lhs, n := m.readAddress(pc)
	pc += n
	rhs, n := m.readAddress(pc)
	pc += n
	dst, n := m.readAddress(pc)
	pc += n
	length := int(m.readProgramUint64(pc))
	pc += compiler.USizeBytes

	a, err := m.readValue(lhs, length)
	if err != nil {
		m.errcode = err
		return pc
	}
	b, err := m.readValue(rhs, length)
	if err != nil {
		m.errcode = err
		return pc
	}
	apply(a, b)
	if err := m.writeValue(dst, b); err != nil {
		m.errcode = err
	}
	return pc
}

// execCompare backs OpEquality/OpNotEqual. Unlike execBinary, the
// result is always a single Boolean byte regardless of the operand
// width being compared (Pointer equality compares 8-byte operands but
// still produces a 1-byte answer) - writing `length` bytes to dst as
// execBinary does would overrun a Boolean-sized destination cell.
func (m *Machine) execCompare(pc int, compare func(a, b []byte) bool) int {
	lhs, n := m.readAddress(pc)
	pc += n
	rhs, n := m.readAddress(pc)
	pc += n
	dst, n := m.readAddress(pc)
	pc += n
	length := int(m.readProgramUint64(pc))
	pc += compiler.USizeBytes

	a, err := m.readValue(lhs, length)
	if err != nil {
		m.errcode = err
		return pc
	}
	b, err := m.readValue(rhs, length)
	if err != nil {
		m.errcode = err
		return pc
	}

	result := make([]byte, compiler.BooleanSize)
	if compare(a, b) {
		result[0] = compiler.BoolTrue
	}
	if err := m.writeValue(dst, result); err != nil {
		m.errcode = err
	}
	return pc
}

func addBytesLE(a, b []byte) {
	carry := uint16(0)
	for i := 0; i < len(b); i++ {
		sum := uint16(a[i]) + uint16(b[i]) + carry
		b[i] = byte(sum)
		carry = sum >> 8
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (m *Machine) dumpStack() {
	fmt.Fprintf(m.stdout, "stack (frame base %d, top %d): %v\n", m.currentFrameBase(), m.stackTop, m.stack[m.currentFrameBase():m.stackTop])
	m.stdout.Flush()
}

func (m *Machine) viewMemory(addr compiler.Address, length int, decimal bool) error {
	value, err := m.readValue(addr, length)
	if err != nil {
		return err
	}
	if decimal {
		fmt.Fprintf(m.stdout, "%d\n", uint64FromVariableWidth(value))
	} else {
		fmt.Fprintf(m.stdout, "%v\n", value)
	}
	m.stdout.Flush()
	return nil
}

// uint64FromVariableWidth widens a little-endian byte value of any width
// up to 8 bytes into a uint64, for decimal display.
func uint64FromVariableWidth(b []byte) uint64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
