package compiler

import "fmt"

// BlockCoordinator drives compilation line by line: it keeps the stack of
// currently open blocks, closes whichever blocks a line's indentation
// dedents past, offers elif/else continuations to the block they extend,
// and otherwise either opens a new block or hands the line to the
// ordinary statement dispatcher.
type BlockCoordinator struct {
	ctx    *BlockContext
	frames []BlockHandler
}

func newBlockCoordinator(ctx *BlockContext) *BlockCoordinator {
	return &BlockCoordinator{ctx: ctx}
}

func (c *BlockCoordinator) top() BlockHandler {
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

func (c *BlockCoordinator) push(h BlockHandler) {
	c.frames = append(c.frames, h)
}

// popForcedExit closes the innermost open block: it finalizes the
// handler and drops the reference-stack handler the coordinator pushed
// for it when it was opened.
func (c *BlockCoordinator) popForcedExit() error {
	idx := len(c.frames) - 1
	h := c.frames[idx]
	c.frames = c.frames[:idx]
	if err := h.OnForcedExit(c.ctx); err != nil {
		return err
	}
	c.ctx.Refs.RemoveHandler()
	return nil
}

func (c *BlockCoordinator) processLine(line Line) error {
	for len(c.frames) > 0 {
		top := c.top()
		hi := top.HeaderIndent()
		if hi < line.Indent {
			break
		}
		if hi == line.Indent {
			if cont, ok := top.(Continuable); ok {
				consumed, err := cont.TryContinue(c.ctx, line)
				if err != nil {
					return err
				}
				if consumed {
					return nil
				}
			}
		}
		if err := c.popForcedExit(); err != nil {
			return err
		}
	}

	if len(line.Symbols) == 0 {
		return nil
	}

	c.ctx.RegisterPrefix = nil
	var gate ClassGated
	if top := c.top(); top != nil {
		if cb, ok := top.(*ClassBlock); ok {
			gate = cb
			c.ctx.RegisterPrefix = []string{SelfName}
		}
	}
	if gate != nil {
		if err := gate.AllowLine(line); err != nil {
			return err
		}
	}

	head := line.Symbols[0]

	if head.Kind == SymBlock {
		return c.openBlock(line)
	}

	if head.Kind == SymKeyword {
		switch head.Keyword {
		case KeywordBreak:
			return c.breakBlock()
		case KeywordContinue:
			return c.continueBlock()
		case KeywordImport:
			return fmt.Errorf("'import' is not supported")
		}
	}

	return dispatchLine(line, c.ctx)
}

func (c *BlockCoordinator) breakBlock() error {
	for i := len(c.frames) - 1; i >= 0; i-- {
		handled, err := c.frames[i].OnBreak(c.ctx)
		if err != nil {
			return err
		}
		if handled {
			return nil
		}
	}
	return fmt.Errorf("'break' outside of a loop")
}

func (c *BlockCoordinator) continueBlock() error {
	for i := len(c.frames) - 1; i >= 0; i-- {
		handled, err := c.frames[i].OnContinue(c.ctx)
		if err != nil {
			return err
		}
		if handled {
			return nil
		}
	}
	return fmt.Errorf("'continue' outside of a loop")
}

func (c *BlockCoordinator) openBlock(line Line) error {
	blk := line.Symbols[0].Block
	indent := line.Indent
	rest := line.Symbols[1:]

	switch blk {
	case BlockElif, BlockElse:
		return fmt.Errorf("'%s' with no matching 'if'", blk)
	case BlockLoop:
		return fmt.Errorf("'loop' is not implemented")
	case BlockBase:
		return fmt.Errorf("'block' cannot be opened explicitly")
	}

	c.ctx.Refs.AddHandler()

	var handler BlockHandler
	var err error
	switch blk {
	case BlockIf:
		handler, err = NewIfBlock(c.ctx, indent, rest)
	case BlockWhile:
		handler, err = NewWhileBlock(c.ctx, indent, rest)
	case BlockFunction:
		var name string
		var params []ParamDecl
		name, params, err = parseFunctionHeader(rest)
		if err == nil {
			handler, err = NewFunctionBlock(c.ctx, indent, c.ctx.namePath(name), params)
		}
	case BlockClass:
		var name string
		name, err = parseClassHeader(rest)
		if err == nil {
			handler, err = NewClassBlock(c.ctx, indent, name)
		}
	default:
		err = fmt.Errorf("'%s' cannot open a block here", blk)
	}

	if err != nil {
		c.ctx.Refs.RemoveHandler()
		return err
	}
	c.push(handler)
	return nil
}
