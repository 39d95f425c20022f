package compiler

import (
	"fmt"
	"strings"
)

// lineHandler tries to consume line as one specific statement shape. It
// returns handled=false (and a nil error) when the shape does not match,
// so dispatchLine can offer the line to the next handler in the list.
type lineHandler func(line Line, ctx *BlockContext) (bool, error)

// Order matters: a call line and a variable-assignment line both start
// with a name, so the more specific shape (call) is tried first.
var lineHandlers = []lineHandler{
	handleCallLine,
	handleVariableAssignmentLine,
	handleVariableInitialisationLine,
	handleDumpLine,
	handleViewMemoryLine,
}

func dispatchLine(line Line, ctx *BlockContext) error {
	for _, h := range lineHandlers {
		handled, err := h(line, ctx)
		if err != nil {
			return err
		}
		if handled {
			return nil
		}
	}
	return fmt.Errorf("line does not match any known statement shape")
}

// argListItems normalizes a call or parameter parenthesized group into a
// list of items. The lexer only produces a List when it saw a comma, so
// a single argument with no trailing comma arrives as a plain
// BracketedSection; both are accepted here as one-or-more argument
// slots rather than forcing source to carry a trailing comma.
func argListItems(s Symbol) ([][]Symbol, bool) {
	switch s.Kind {
	case SymList:
		return s.List, true
	case SymBracketedSection:
		return [][]Symbol{s.Section}, true
	default:
		return nil, false
	}
}

// handleCallLine matches `name(args...)` used as a statement on its own.
func handleCallLine(line Line, ctx *BlockContext) (bool, error) {
	if len(line.Symbols) != 2 {
		return false, nil
	}
	nameSym, argsSym := line.Symbols[0], line.Symbols[1]
	if nameSym.Kind != SymName {
		return false, nil
	}
	args, ok := argListItems(argsSym)
	if !ok {
		return false, nil
	}
	ref, err := ctx.Refs.GetReference(nameSym.Name)
	if err != nil {
		return true, err
	}
	fref, err := ref.GetFunction()
	if err != nil {
		return true, err
	}
	_, err = fref.Call(args, ctx.Memory, ctx.Refs, ctx.Stack)
	return true, err
}

// handleVariableAssignmentLine matches `name = expr`, `name += expr`, etc.
func handleVariableAssignmentLine(line Line, ctx *BlockContext) (bool, error) {
	if len(line.Symbols) < 3 {
		return false, nil
	}
	if line.Symbols[0].Kind != SymName || line.Symbols[1].Kind != SymAssigner {
		return false, nil
	}
	ref, err := ctx.Refs.GetReference(line.Symbols[0].Name)
	if err != nil {
		return true, err
	}
	v, err := ref.GetVariable()
	if err != nil {
		return true, err
	}
	rhs := line.Symbols[1].Assigner.Expand(line.Symbols[0], line.Symbols[2:])
	return true, EvaluateArithmeticIntoType(rhs, v, ctx.Memory, ctx.Refs, ctx.Stack)
}

// allocateDeclaredVariable gives t a home for its declaration. Properties
// declared directly in a class body (RegisterPrefix is ["self"] there)
// go on the heap instead of the enclosing stack frame: a class has only
// one implicit instance for the program's whole lifetime, and its
// methods each get their own call-site-activated frame (see
// FunctionReference.Call), so a self.x reference from inside a method
// body would resolve against the wrong frame if x lived at a StackDirect
// offset. A HeapDirect address is valid no matter which frame is active.
func allocateDeclaredVariable(t Type, ctx *BlockContext) error {
	if len(ctx.RegisterPrefix) > 0 {
		t.SetAddress(HeapDirectAddress(uint64(ctx.Heap.Allocate(t.Length()))))
		return nil
	}
	return t.AllocateVariable(ctx.Stack)
}

// handleVariableInitialisationLine matches `type name = expr`. Every
// declaration must carry a value; bare declarations only exist for
// function parameters, which are parsed by the function block header
// rather than this handler.
func handleVariableInitialisationLine(line Line, ctx *BlockContext) (bool, error) {
	if len(line.Symbols) < 2 {
		return false, nil
	}
	if line.Symbols[0].Kind != SymType || line.Symbols[1].Kind != SymName {
		return false, nil
	}
	name := line.Symbols[1].Name
	if len(name) != 1 {
		return true, fmt.Errorf("cannot declare a dotted name '%s'", strings.Join(name, "."))
	}
	if len(line.Symbols) < 4 || line.Symbols[2].Kind != SymAssigner {
		return true, fmt.Errorf("variable '%s' must be initialized with a value", name[0])
	}

	t, err := NewUnallocatedType(line.Symbols[0].Type)
	if err != nil {
		return true, err
	}
	if err := allocateDeclaredVariable(t, ctx); err != nil {
		return true, err
	}
	rhs := line.Symbols[2].Assigner.Expand(NameSymbol(name...), line.Symbols[3:])
	if err := EvaluateArithmeticIntoType(rhs, t, ctx.Memory, ctx.Refs, ctx.Stack); err != nil {
		return true, err
	}
	if err := ctx.Refs.Register(VariableReference(t), ctx.namePath(name[0]), 0); err != nil {
		return true, err
	}
	return true, nil
}

func handleDumpLine(line Line, ctx *BlockContext) (bool, error) {
	if len(line.Symbols) != 1 || line.Symbols[0].Kind != SymKeyword || line.Symbols[0].Keyword != KeywordDump {
		return false, nil
	}
	EmitDump(ctx.Memory)
	return true, nil
}

// handleViewMemoryLine matches `viewmem name` and `viewmemdec name`.
func handleViewMemoryLine(line Line, ctx *BlockContext) (bool, error) {
	if len(line.Symbols) != 2 || line.Symbols[0].Kind != SymKeyword {
		return false, nil
	}
	kw := line.Symbols[0].Keyword
	if kw != KeywordViewMemory && kw != KeywordViewMemoryDecimal {
		return false, nil
	}
	if line.Symbols[1].Kind != SymName {
		return false, nil
	}
	ref, err := ctx.Refs.GetReference(line.Symbols[1].Name)
	if err != nil {
		return true, err
	}
	v, err := ref.GetVariable()
	if err != nil {
		return true, err
	}
	if kw == KeywordViewMemory {
		EmitViewMemory(ctx.Memory, v.Address(), v.Length())
	} else {
		EmitViewMemoryDecimal(ctx.Memory, v.Address(), v.Length())
	}
	return true, nil
}

// parseFunctionHeader reads `name(type pname, type pname, ...)` out of the
// symbols following the `fn` block keyword. The lexer encodes the
// parameter list as a SymList whose items are two-symbol slices
// (TypeSymbol, Name), or as a single SymBracketedSection for exactly one
// parameter (see argListItems) - the same shapes a call's argument list
// uses for its expressions; there is no dedicated parameter-list symbol
// kind.
func parseFunctionHeader(symbols []Symbol) (string, []ParamDecl, error) {
	if len(symbols) != 2 || symbols[0].Kind != SymName || len(symbols[0].Name) != 1 {
		return "", nil, fmt.Errorf("expected 'fn <name>(<params>)'")
	}
	items, ok := argListItems(symbols[1])
	if !ok {
		return "", nil, fmt.Errorf("expected a parameter list after function name '%s'", symbols[0].Name[0])
	}
	params := make([]ParamDecl, 0, len(items))
	for _, p := range items {
		if len(p) != 2 || p[0].Kind != SymType || p[1].Kind != SymName || len(p[1].Name) != 1 {
			return "", nil, fmt.Errorf("malformed parameter declaration in 'fn %s'", symbols[0].Name[0])
		}
		params = append(params, ParamDecl{Name: p[1].Name[0], Type: p[0].Type})
	}
	return symbols[0].Name[0], params, nil
}

func parseClassHeader(symbols []Symbol) (string, error) {
	if len(symbols) != 1 || symbols[0].Kind != SymName || len(symbols[0].Name) != 1 {
		return "", fmt.Errorf("expected 'class <name>'")
	}
	return symbols[0].Name[0], nil
}
