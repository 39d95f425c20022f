package runtime

import (
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// LoadFile memory-maps a compiled .cwhy file and returns a Machine ready
// to execute it. The mapping is read-only and is released when the
// returned closer is called; the Machine itself only ever reads from
// the mapped bytes (ProgramDirect/ProgramIndirect addressing and
// instruction fetch), so no copy is needed up front.
func LoadFile(path string) (*Machine, io.Closer, error) {
	return LoadFileWithOutput(path, os.Stdout)
}

// LoadFileWithOutput is LoadFile with an explicit output sink.
func LoadFileWithOutput(path string, out io.Writer) (*Machine, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, nil, err
	}

	machine := NewMachineWithOutput([]byte(m), out)
	return machine, mappedProgram(m), nil
}

// mappedProgram adapts mmap.MMap (which offers Unmap, not Close) behind
// a named type so callers don't need to import the mmap package
// themselves just to close what LoadFile handed back.
func mappedProgram(m mmap.MMap) io.Closer {
	return mappedCloser{m: m}
}

type mappedCloser struct{ m mmap.MMap }

func (c mappedCloser) Close() error { return c.m.Unmap() }
