package compiler

// BaseBlock is the single implicit block wrapping the whole program. It
// owns the one StackCreate site every program has and the outermost
// stack-sizes frame.
type BaseBlock struct {
	patch StackCreatePatch
}

func NewBaseBlock(ctx *BlockContext) *BaseBlock {
	b := &BaseBlock{}
	b.patch = EmitStackCreate(ctx.Memory)
	EmitStackUp(ctx.Memory)
	ctx.Stack.AddStack()
	return b
}

func (b *BaseBlock) HeaderIndent() int { return -1 }

func (b *BaseBlock) OnForcedExit(ctx *BlockContext) error {
	EmitStackDown(ctx.Memory)
	b.patch.SetSize(ctx.Stack.StackSize(), ctx.Memory)
	ctx.Stack.RemoveStack()
	return nil
}

func (b *BaseBlock) OnBreak(ctx *BlockContext) (bool, error)    { return false, nil }
func (b *BaseBlock) OnContinue(ctx *BlockContext) (bool, error) { return false, nil }
