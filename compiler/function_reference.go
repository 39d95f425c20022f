package compiler

import "fmt"

// IncompleteFunctionCall records that a call site reserved a frame for a
// function before that function had finished compiling (a call from
// within the function's own body, directly or via a method). The call
// site's StackCreate placeholder is left unpatched until the function's
// size is known; CompleteWithStackSize fills in every outstanding one.
type IncompleteFunctionCall struct {
	function   *FunctionReference
	framePatch StackCreatePatch
}

// FunctionReference is what a `fn` declaration registers into the
// reference stack (or a class's member map, for a method).
//
// Each call site owns its own StackCreate/StackUp pair (see Call): the
// function's frame is reserved and activated by the caller, not the
// callee, so that every invocation - including a recursive one - gets
// its own independent frame rather than all invocations sharing the one
// set of parameter addresses fixed at declaration time.
type FunctionReference struct {
	StartPosition  int
	ReturnPointer  Type
	Params         []Parameter
	FrameSize      int
	ArgScratchBase int

	complete        bool
	incompleteCalls []*IncompleteFunctionCall
}

// NewFunctionReference registers a function's identity. argScratchBase
// is the heap offset Call relays argument values through - reserved up
// front by NewFunctionBlock, wide enough for every parameter - so that
// argument evaluation (which may need the caller's own frame) and
// parameter initialization (which needs the callee's) can each run
// against the frame that's actually active at the time.
func NewFunctionReference(start int, returnPointer Type, params []Parameter, argScratchBase int) *FunctionReference {
	return &FunctionReference{StartPosition: start, ReturnPointer: returnPointer, Params: params, ArgScratchBase: argScratchBase}
}

func (f *FunctionReference) IsComplete() bool { return f.complete }

// PendingCalls returns the number of calls still waiting on this
// function to complete. It is zero once CompleteWithStackSize has run.
func (f *FunctionReference) PendingCalls() int { return len(f.incompleteCalls) }

// Call emits the full call protocol. It evaluates each argument into a
// heap relay slot while the caller's frame is still current, then
// reserves and activates the callee's frame itself (StackCreate +
// StackUp), copies each relay into the corresponding parameter slot -
// now an address within the frame that just became current - writes the
// return address into the function's return-pointer cell, and emits a
// Jump to the function's start position. A StackDown emitted right after
// that Jump, where the callee returns to, balances this StackUp.
//
// If the function has not yet completed compiling (a self-recursive
// call from within its own body), this call's StackCreate placeholder
// is left unpatched and the call is recorded as incomplete; it is
// patched once the function's frame size is known.
func (f *FunctionReference) Call(args [][]Symbol, memory *MemoryManager, refs *ReferenceStack, stack *StackSizes) (*IncompleteFunctionCall, error) {
	if len(args) != len(f.Params) {
		return nil, fmt.Errorf("function expects %d argument(s), got %d", len(f.Params), len(args))
	}

	// Evaluate every argument straight into its heap-backed relay slot.
	// A heap address is valid no matter which stack frame is active, so
	// this is safe to do with the caller's frame still current - unlike
	// a stack temporary, the value survives the activation boundary the
	// call is about to cross when it reserves the callee's frame below.
	relayOffset := f.ArgScratchBase
	relays := make([]Type, len(args))
	for i, arg := range args {
		width := f.Params[i].Type.Length()
		relay, err := NewUnallocatedType(f.Params[i].Type.TypeSymbol())
		if err != nil {
			return nil, err
		}
		relay.SetAddress(HeapDirectAddress(uint64(relayOffset)))
		if err := EvaluateArithmeticIntoType(arg, relay, memory, refs, stack); err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i+1, f.Params[i].Name, err)
		}
		relays[i] = relay
		relayOffset += width
	}

	framePatch := EmitStackCreate(memory)
	EmitStackUp(memory)
	if f.complete {
		framePatch.SetSize(f.FrameSize, memory)
	}

	for i, relay := range relays {
		if err := f.Params[i].Type.RuntimeCopyFrom(relay, memory); err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i+1, f.Params[i].Name, err)
		}
	}

	// The return address is whatever comes right after both the Copy that
	// writes it and the Jump that follows it; both have fixed wire sizes,
	// so the target can be computed before either is emitted.
	const copySize = 1 + AddressWireSize + AddressWireSize + USizeBytes
	const jumpSize = 1 + USizeBytes
	returnTarget := memory.Position() + copySize + jumpSize
	returnSrc := ImmediateAddress(uintBytes(uint64(returnTarget)))
	EmitCopy(memory, returnSrc, f.ReturnPointer.Address(), PointerSize)

	EmitJump(memory, f.StartPosition)

	// Placed at exactly returnTarget: the callee's DynamicJump lands here
	// with its own frame (the one this call just created) still active,
	// so this is where that frame gets torn down.
	EmitStackDown(memory)

	if !f.complete {
		call := &IncompleteFunctionCall{function: f, framePatch: framePatch}
		f.incompleteCalls = append(f.incompleteCalls, call)
		return call, nil
	}
	return nil, nil
}

// CompleteWithStackSize marks the function complete, patches every call
// site that reserved a frame before this size was known, and records
// the size so that later calls can patch their own StackCreate inline.
func (f *FunctionReference) CompleteWithStackSize(size int, memory *MemoryManager) {
	f.complete = true
	f.FrameSize = size
	for _, call := range f.incompleteCalls {
		call.framePatch.SetSize(size, memory)
	}
	f.incompleteCalls = nil
}
