package compiler

// ParamDecl is a parsed, not-yet-allocated function parameter.
type ParamDecl struct {
	Name string
	Type TypeSymbol
}

// FunctionBlock implements fn entry/exit. The coordinator has already
// pushed one reference-stack handler (used for the parameters) before
// calling NewFunctionBlock; FunctionBlock pushes a second handler of its
// own for the body's locals and pops it again in OnForcedExit, leaving
// the coordinator to pop the parameter handler afterward.
//
// Unlike a base block, a function does not emit its own StackCreate or
// StackUp: every call site reserves and activates the frame itself (see
// FunctionReference.Call), so that each invocation gets an independent
// frame instead of every call sharing one. The body does not undo that
// activation either: the call site emits the matching StackDown right
// after its Jump, where the body's DynamicJump returns to.
type FunctionBlock struct {
	headerIndent   int
	skipJump       JumpPatch
	fref           *FunctionReference
	prevDepthLimit int
}

// NewFunctionBlock parses no syntax itself: namePath is the (possibly
// "self"-qualified) declared name, already resolved by the function line
// handler, and params is the parsed, unallocated parameter list.
func NewFunctionBlock(ctx *BlockContext, headerIndent int, namePath []string, params []ParamDecl) (*FunctionBlock, error) {
	skipJump := EmitJump(ctx.Memory, -1)
	start := ctx.Memory.Position()
	ctx.Stack.AddStack()

	allocatedParams := make([]Parameter, 0, len(params))
	scratchWidth := 0
	for _, p := range params {
		t, err := NewUnallocatedType(p.Type)
		if err != nil {
			return nil, err
		}
		if err := t.AllocateVariable(ctx.Stack); err != nil {
			return nil, err
		}
		if err := ctx.Refs.Register(VariableReference(t), []string{p.Name}, 0); err != nil {
			return nil, err
		}
		allocatedParams = append(allocatedParams, Parameter{Name: p.Name, Type: t})
		scratchWidth += t.Length()
	}
	argScratchBase := ctx.Heap.Allocate(scratchWidth)

	prevLimit := ctx.Refs.DepthLimit()
	qualified := len(namePath) > 1
	if qualified {
		ctx.Refs.SetDepthLimit(ctx.Refs.Depth() - 2)
	} else {
		ctx.Refs.SetDepthLimit(ctx.Refs.Depth() - 1)
	}

	returnPtr := newPointerType()
	if err := returnPtr.AllocateVariable(ctx.Stack); err != nil {
		return nil, err
	}

	fref := NewFunctionReference(start, returnPtr, allocatedParams, argScratchBase)
	if qualified {
		if err := ctx.Refs.Register(FunctionReferenceValue(fref), namePath, 0); err != nil {
			return nil, err
		}
	} else {
		if err := ctx.Refs.Register(FunctionReferenceValue(fref), namePath, 1); err != nil {
			return nil, err
		}
	}

	ctx.Refs.AddHandler()

	return &FunctionBlock{
		headerIndent:   headerIndent,
		skipJump:       skipJump,
		fref:           fref,
		prevDepthLimit: prevLimit,
	}, nil
}

func (b *FunctionBlock) HeaderIndent() int { return b.headerIndent }

// OnForcedExit jumps back to the caller via the return-pointer cell in
// this invocation's own frame. It does not pop that frame itself: the
// frame was created by the call site (see FunctionReference.Call), and
// the call site is what tears it down, right after the Jump it used to
// get here - by the time that happens control has already left, so the
// frame is still valid for this read.
func (b *FunctionBlock) OnForcedExit(ctx *BlockContext) error {
	ctx.Refs.RemoveHandler()
	EmitDynamicJump(ctx.Memory, b.fref.ReturnPointer.Address())
	b.fref.CompleteWithStackSize(ctx.Stack.StackSize(), ctx.Memory)
	ctx.Refs.SetDepthLimit(b.prevDepthLimit)
	ctx.Stack.RemoveStack()
	b.skipJump.SetDestination(ctx.Memory.Position(), ctx.Memory)
	return nil
}

func (b *FunctionBlock) OnBreak(ctx *BlockContext) (bool, error) {
	return true, breakContinueAcrossFunctionError("break")
}

func (b *FunctionBlock) OnContinue(ctx *BlockContext) (bool, error) {
	return true, breakContinueAcrossFunctionError("continue")
}
