package runtime

import (
	"os"
	"runtime/debug"
	"strconv"
)

// Err returns the reason execution stopped, or nil if it is still
// running. errProgramFinished is the normal, successful termination
// condition - the pc walked off the end of the compiled program.
func (m *Machine) Err() error {
	if m.errcode == errProgramFinished {
		return nil
	}
	return m.errcode
}

func (m *Machine) recoverFault() {
	if r := recover(); r != nil {
		if m.errcode == nil {
			m.errcode = errSegmentationFault
		}
	}
}

// Run executes the program from its current pc until it halts, either
// by exhausting the instruction stream or by faulting. It disables the
// garbage collector for the duration and restores the GOGC setting
// (100 when unset or not a number) afterwards.
func (m *Machine) Run() (err error) {
	gcPercent := 100
	if v, ok := os.LookupEnv("GOGC"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			gcPercent = n
		}
	}
	defer debug.SetGCPercent(gcPercent)
	debug.SetGCPercent(-1)

	defer func() { err = m.Err() }()
	defer m.recoverFault()
	for m.errcode == nil {
		m.step()
	}
	defer m.stdout.Flush()
	return m.Err()
}

// Step executes a single instruction, for debug/single-step drivers.
// It returns the same error Run would once execution halts.
func (m *Machine) Step() (err error) {
	defer func() { err = m.Err() }()
	defer m.recoverFault()
	if m.errcode == nil {
		m.step()
	}
	m.stdout.Flush()
	return m.Err()
}
