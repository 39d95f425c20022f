package compiler

// IfBlock implements if/elif/else chaining. Each branch emits a
// JumpIfNot guarding its body; a branch that runs must then jump past
// every remaining branch in the chain, which is what endQueue collects
// and patches once the whole chain closes.
type IfBlock struct {
	headerIndent int
	jumpIfNot    JumpIfNotPatch
	hasJumpIfNot bool
	endQueue     []JumpPatch
	closed       bool
}

func NewIfBlock(ctx *BlockContext, headerIndent int, condition []Symbol) (*IfBlock, error) {
	cond, err := EvaluateArithmeticToTypes(condition, ctx.Memory, ctx.Refs, ctx.Stack, TypeBoolean)
	if err != nil {
		return nil, err
	}
	return &IfBlock{
		headerIndent: headerIndent,
		jumpIfNot:    EmitJumpIfNot(ctx.Memory, cond.Address()),
		hasJumpIfNot: true,
	}, nil
}

func (b *IfBlock) HeaderIndent() int { return b.headerIndent }

func (b *IfBlock) TryContinue(ctx *BlockContext, line Line) (bool, error) {
	if b.closed || len(line.Symbols) == 0 || line.Symbols[0].Kind != SymBlock {
		return false, nil
	}
	switch line.Symbols[0].Block {
	case BlockElif:
		b.endQueue = append(b.endQueue, EmitJump(ctx.Memory, -1))
		b.jumpIfNot.SetDestination(ctx.Memory.Position(), ctx.Memory)
		ctx.Refs.RemoveHandler()
		ctx.Refs.AddHandler()
		cond, err := EvaluateArithmeticToTypes(line.Symbols[1:], ctx.Memory, ctx.Refs, ctx.Stack, TypeBoolean)
		if err != nil {
			return true, err
		}
		b.jumpIfNot = EmitJumpIfNot(ctx.Memory, cond.Address())
		return true, nil
	case BlockElse:
		b.endQueue = append(b.endQueue, EmitJump(ctx.Memory, -1))
		b.jumpIfNot.SetDestination(ctx.Memory.Position(), ctx.Memory)
		ctx.Refs.RemoveHandler()
		ctx.Refs.AddHandler()
		b.hasJumpIfNot = false
		b.closed = true
		return true, nil
	default:
		return false, nil
	}
}

func (b *IfBlock) OnForcedExit(ctx *BlockContext) error {
	if b.hasJumpIfNot {
		b.jumpIfNot.SetDestination(ctx.Memory.Position(), ctx.Memory)
	}
	for _, p := range b.endQueue {
		p.SetDestination(ctx.Memory.Position(), ctx.Memory)
	}
	return nil
}

func (b *IfBlock) OnBreak(ctx *BlockContext) (bool, error)    { return false, nil }
func (b *IfBlock) OnContinue(ctx *BlockContext) (bool, error) { return false, nil }
