// Package runtime is the bytecode interpreter that executes programs
// produced by the compiler package. It knows nothing about Why source
// syntax: it only understands the opcode table in compiler/instructions.go
// and the address model in compiler/address.go.
package runtime

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"os"

	"github.com/Robert-M-Lucas/whython-6/compiler"
)

// defaultStackSize (1 MiB) and defaultHeapSize (64 KiB) are fixed
// sizes: the compiler's wire format never records a function frame's
// size anywhere the runtime could read ahead of time for the heap, and
// the language has no allocation opcode, so both regions are flat,
// pre-sized buffers indexed directly by the offsets/pointers the
// compiled program computes.
const (
	defaultStackSize = 1 << 20
	defaultHeapSize  = 1 << 16
)

var (
	errProgramFinished  = errors.New("ran out of instructions")
	errSegmentationFault = errors.New("segmentation fault")
	errStackOverflow    = errors.New("stack overflow")
	errUnknownOpcode    = errors.New("instruction not recognized")
	errWriteToImmediate = errors.New("cannot write to an immediate address")
)

// Machine holds every memory region and piece of execution state a
// compiled program touches.
type Machine struct {
	program []byte
	stack   []byte
	heap    []byte

	pc         int
	stackTop   int
	frameBases []int
	// pendingFrameSize is the size operand most recently read from a
	// StackCreate, consumed by the StackUp that always immediately
	// follows it (see compiler's BaseBlock and FunctionReference.Call).
	pendingFrameSize int

	stdout *bufio.Writer

	errcode error
}

// NewMachine builds a Machine ready to execute program, which is the
// exact byte buffer a compiler.MemoryManager produced.
func NewMachine(program []byte) *Machine {
	return NewMachineWithOutput(program, os.Stdout)
}

// NewMachineWithOutput is NewMachine with an explicit output sink, used
// by tests to capture dump/viewmem/viewmemdec output.
func NewMachineWithOutput(program []byte, out io.Writer) *Machine {
	return &Machine{
		program: program,
		stack:   make([]byte, defaultStackSize),
		heap:    make([]byte, defaultHeapSize),
		stdout:  bufio.NewWriter(out),
	}
}

// currentFrameBase returns the offset StackDirect/StackIndirect offsets
// are relative to: the base of whichever frame StackUp most recently
// activated.
func (m *Machine) currentFrameBase() int {
	if len(m.frameBases) == 0 {
		return 0
	}
	return m.frameBases[len(m.frameBases)-1]
}

func uint64At(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

func putUint64At(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }

// resolve turns an Address into the byte slice it names, the number of
// bytes requested (length), and whether the location is writable.
// Immediate addresses are always readable and never writable.
func (m *Machine) resolve(addr compiler.Address, length int) ([]byte, bool, error) {
	switch addr.Mode {
	case compiler.Immediate:
		if len(addr.Immediate) < length {
			return nil, false, errSegmentationFault
		}
		return addr.Immediate[:length], false, nil
	case compiler.StackDirect:
		return m.sliceAt(m.stack, m.currentFrameBase()+int(addr.Offset), length, true)
	case compiler.StackIndirect:
		cell, _, err := m.sliceAt(m.stack, m.currentFrameBase()+int(addr.Offset), compiler.AddressWireSize, true)
		if err != nil {
			return nil, false, err
		}
		inner, _, err := compiler.DecodeAddress(cell)
		if err != nil {
			return nil, false, err
		}
		return m.resolveWritable(inner, length)
	case compiler.HeapDirect:
		return m.sliceAt(m.heap, int(addr.Offset), length, true)
	case compiler.HeapIndirect:
		cell, _, err := m.sliceAt(m.heap, int(addr.Offset), compiler.AddressWireSize, true)
		if err != nil {
			return nil, false, err
		}
		inner, _, err := compiler.DecodeAddress(cell)
		if err != nil {
			return nil, false, err
		}
		return m.resolveWritable(inner, length)
	case compiler.ProgramDirect:
		return m.sliceAt(m.program, int(addr.Offset), length, false)
	case compiler.ProgramIndirect:
		cell, _, err := m.sliceAt(m.program, int(addr.Offset), compiler.AddressWireSize, false)
		if err != nil {
			return nil, false, err
		}
		inner, _, err := compiler.DecodeAddress(cell)
		if err != nil {
			return nil, false, err
		}
		return m.resolveWritable(inner, length)
	default:
		return nil, false, errSegmentationFault
	}
}

// resolveWritable is resolve minus the writable-ness of the outer
// indirection cell: the cell that held the pointer doesn't matter once
// followed, only whether the pointed-to region itself can be written.
func (m *Machine) resolveWritable(addr compiler.Address, length int) ([]byte, bool, error) {
	return m.resolve(addr, length)
}

func (m *Machine) sliceAt(region []byte, offset, length int, writable bool) ([]byte, bool, error) {
	if offset < 0 || length < 0 || offset+length > len(region) {
		return nil, false, errSegmentationFault
	}
	return region[offset : offset+length], writable, nil
}

// readValue resolves addr and returns a copy of its bytes.
func (m *Machine) readValue(addr compiler.Address, length int) ([]byte, error) {
	b, _, err := m.resolve(addr, length)
	if err != nil {
		return nil, err
	}
	cp := make([]byte, length)
	copy(cp, b)
	return cp, nil
}

// writeValue resolves addr and copies value into it, rejecting
// immediates per the data model's invariant.
func (m *Machine) writeValue(addr compiler.Address, value []byte) error {
	b, writable, err := m.resolve(addr, len(value))
	if err != nil {
		return err
	}
	if !writable {
		return errWriteToImmediate
	}
	copy(b, value)
	return nil
}
