package compiler

// BlockContext bundles the shared compilation state every block and
// line handler operates on.
type BlockContext struct {
	Memory *MemoryManager
	Refs   *ReferenceStack
	Stack  *StackSizes
	Heap   *HeapSizes

	// RegisterPrefix is prepended to the name path of any variable or
	// function a line declares. The coordinator sets it to ["self"]
	// while dispatching lines directly inside a class body (so
	// properties and methods land on the class's member map instead of
	// the generic handler stack) and clears it everywhere else.
	RegisterPrefix []string
}

func (c *BlockContext) namePath(name string) []string {
	if len(c.RegisterPrefix) == 0 {
		return []string{name}
	}
	out := make([]string, 0, len(c.RegisterPrefix)+1)
	out = append(out, c.RegisterPrefix...)
	out = append(out, name)
	return out
}

// BlockHandler is the state machine behind one open block (base, if,
// while, function or class). The coordinator pushes one reference-stack
// handler before constructing the block (NewIfBlock, NewFunctionBlock,
// ...) and pops it after the block is fully removed from the block stack.
type BlockHandler interface {
	// HeaderIndent is the indentation level of the line that opened
	// this block; the block's body is every subsequent line with a
	// strictly greater indent.
	HeaderIndent() int

	// OnForcedExit finalizes the block because something shallower (or
	// end of input) came along without an explicit close.
	OnForcedExit(ctx *BlockContext) error

	// OnBreak/OnContinue are offered to every open block from innermost
	// to outermost; a block that can handle break/continue itself
	// (While) returns true to stop propagation, false to let an
	// enclosing block try. Function returns an error: break/continue
	// cannot cross a function boundary.
	OnBreak(ctx *BlockContext) (bool, error)
	OnContinue(ctx *BlockContext) (bool, error)
}

// Continuable is implemented by block handlers that can consume a
// sibling line at their own header indent as a continuation of the same
// construct instead of being closed (elif/else following if/elif).
type Continuable interface {
	TryContinue(ctx *BlockContext, line Line) (bool, error)
}

// ClassGated is implemented by blocks that restrict what kind of line
// may appear in their body (Class: properties, then methods).
type ClassGated interface {
	AllowLine(line Line) error
}
