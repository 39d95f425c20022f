package compiler

import "github.com/pkg/errors"

// Compile translates a fully lexed line stream into program bytecode. It
// owns the one implicit base block every program runs inside and closes
// every block still open once the line stream ends.
func Compile(lines []Line) (*MemoryManager, error) {
	ctx := &BlockContext{
		Memory: NewMemoryManager(),
		Refs:   NewReferenceStack(),
		Stack:  NewStackSizes(),
		Heap:   NewHeapSizes(),
	}
	ctx.Refs.AddHandler()
	coord := newBlockCoordinator(ctx)
	coord.push(NewBaseBlock(ctx))

	for _, line := range lines {
		if err := coord.processLine(line); err != nil {
			return nil, &CompileError{File: line.File, Line: line.LineNo, Err: errors.WithStack(err)}
		}
	}

	for len(coord.frames) > 0 {
		if err := coord.popForcedExit(); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	return ctx.Memory, nil
}
