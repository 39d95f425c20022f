package compiler

// WhileBlock loops back to its condition on every iteration and collects
// break/continue jumps to patch once the loop closes: break jumps land
// just past the loop, continue jumps land back at the condition.
type WhileBlock struct {
	headerIndent  int
	startPosition int
	jumpIfNot     JumpIfNotPatch
	endQueue      []JumpPatch
	startQueue    []JumpPatch
}

func NewWhileBlock(ctx *BlockContext, headerIndent int, condition []Symbol) (*WhileBlock, error) {
	start := ctx.Memory.Position()
	cond, err := EvaluateArithmeticToTypes(condition, ctx.Memory, ctx.Refs, ctx.Stack, TypeBoolean)
	if err != nil {
		return nil, err
	}
	return &WhileBlock{
		headerIndent:  headerIndent,
		startPosition: start,
		jumpIfNot:     EmitJumpIfNot(ctx.Memory, cond.Address()),
	}, nil
}

func (b *WhileBlock) HeaderIndent() int { return b.headerIndent }

func (b *WhileBlock) OnForcedExit(ctx *BlockContext) error {
	EmitJump(ctx.Memory, b.startPosition)
	end := ctx.Memory.Position()
	b.jumpIfNot.SetDestination(end, ctx.Memory)
	for _, p := range b.endQueue {
		p.SetDestination(end, ctx.Memory)
	}
	for _, p := range b.startQueue {
		p.SetDestination(b.startPosition, ctx.Memory)
	}
	return nil
}

func (b *WhileBlock) OnBreak(ctx *BlockContext) (bool, error) {
	b.endQueue = append(b.endQueue, EmitJump(ctx.Memory, -1))
	return true, nil
}

func (b *WhileBlock) OnContinue(ctx *BlockContext) (bool, error) {
	b.startQueue = append(b.startQueue, EmitJump(ctx.Memory, -1))
	return true, nil
}
