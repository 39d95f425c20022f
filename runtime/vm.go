package runtime

import "io"

// ErrStackOverflow, ErrSegmentationFault and ErrUnknownOpcode are
// exported so callers (and tests) can compare against Run's result with
// errors.Is without reaching into package internals.
var (
	ErrStackOverflow     = errStackOverflow
	ErrSegmentationFault = errSegmentationFault
	ErrUnknownOpcode     = errUnknownOpcode
)

// RunProgram is a convenience entry point: build a Machine over program
// and run it to completion, writing dump/viewmem/viewmemdec output to out.
func RunProgram(program []byte, out io.Writer) error {
	m := NewMachineWithOutput(program, out)
	return m.Run()
}
