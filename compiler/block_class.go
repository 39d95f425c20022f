package compiler

import "fmt"

// ClassBlock collects a class's properties and methods into a single
// ClassReference. The class registers itself twice: as "self" inside
// its own body (visible to properties and, through the depth-limit
// carve-out, to its methods) and under its declared name in the
// enclosing scope (visible to the rest of the program).
type ClassBlock struct {
	headerIndent    int
	name            string
	classRef        *ClassReference
	propertiesPhase bool
}

func NewClassBlock(ctx *BlockContext, headerIndent int, name string) (*ClassBlock, error) {
	classRef := NewClassReference(name)
	if err := ctx.Refs.Register(ClassReferenceValue(classRef), []string{SelfName}, 0); err != nil {
		return nil, err
	}
	if err := ctx.Refs.Register(ClassReferenceValue(classRef), []string{name}, 1); err != nil {
		return nil, err
	}
	return &ClassBlock{headerIndent: headerIndent, name: name, classRef: classRef, propertiesPhase: true}, nil
}

func (b *ClassBlock) HeaderIndent() int      { return b.headerIndent }
func (b *ClassBlock) Name() string           { return b.name }
func (b *ClassBlock) ClassRef() *ClassReference { return b.classRef }

// AllowLine enforces that every property declaration precedes every
// method declaration within a class body.
func (b *ClassBlock) AllowLine(line Line) error {
	if len(line.Symbols) == 0 {
		return nil
	}
	if line.Symbols[0].Kind == SymBlock && line.Symbols[0].Block == BlockFunction {
		b.propertiesPhase = false
		return nil
	}
	if line.Symbols[0].Kind == SymType && !b.propertiesPhase {
		return fmt.Errorf("properties must be declared before methods in class '%s'", b.name)
	}
	return nil
}

func (b *ClassBlock) OnForcedExit(ctx *BlockContext) error { return nil }

func (b *ClassBlock) OnBreak(ctx *BlockContext) (bool, error)    { return false, nil }
func (b *ClassBlock) OnContinue(ctx *BlockContext) (bool, error) { return false, nil }
