package compiler

import (
	"fmt"
	"testing"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	if !cond {
		t.Fatalf(fmt.Sprintf("%v %s", cond, format), args...)
	}
}

var testFile = "test.why"

func ln(indent int, no int, symbols ...Symbol) Line {
	return Line{File: testFile, LineNo: no, Indent: indent, Symbols: symbols}
}

func compileAndCheck(t *testing.T, lines []Line) *MemoryManager {
	memory, err := Compile(lines)
	assert(t, err == nil, "expected compilation to succeed, got: %v", err)
	assert(t, memory != nil, "Compile returned a nil memory manager with no error")
	return memory
}

func compileAndCheckError(t *testing.T, lines []Line) error {
	_, err := Compile(lines)
	assert(t, err != nil, "expected compilation to fail")
	return err
}

// Every program, however small, opens with the base block's StackCreate.
func TestCompileEmptyProgramHasBaseBlock(t *testing.T) {
	memory := compileAndCheck(t, nil)
	bytes := memory.Bytes()
	assert(t, len(bytes) > 0, "expected non-empty program")
	assert(t, bytes[0] == byte(OpStackCreate), "expected first opcode to be StackCreate, got %d", bytes[0])
}

// bool flag = true; dump
func TestCompileBooleanDeclarationAndDump(t *testing.T) {
	lines := []Line{
		ln(0, 1, TypeSymbolSymbol(TypeBoolean), NameSymbol("flag"), AssignerSymbol(AssignSet), LiteralSymbol(BoolLiteral(true))),
		ln(0, 2, KeywordSymbol(KeywordDump)),
	}
	memory := compileAndCheck(t, lines)
	assert(t, len(memory.Bytes()) > 0, "expected emitted bytecode")
}

// bool a = true
// bool b = a & false
// viewmem b
func TestCompileBooleanOperators(t *testing.T) {
	lines := []Line{
		ln(0, 1, TypeSymbolSymbol(TypeBoolean), NameSymbol("a"), AssignerSymbol(AssignSet), LiteralSymbol(BoolLiteral(true))),
		ln(0, 2, TypeSymbolSymbol(TypeBoolean), NameSymbol("b"), AssignerSymbol(AssignSet),
			NameSymbol("a"), OperatorSymbol(OpAnd), LiteralSymbol(BoolLiteral(false))),
		ln(0, 3, KeywordSymbol(KeywordViewMemory), NameSymbol("b")),
	}
	compileAndCheck(t, lines)
}

// if a
//     dump
// elif b
//     dump
// else
//     dump
func TestCompileIfElifElseChain(t *testing.T) {
	lines := []Line{
		ln(0, 1, TypeSymbolSymbol(TypeBoolean), NameSymbol("a"), AssignerSymbol(AssignSet), LiteralSymbol(BoolLiteral(true))),
		ln(0, 2, TypeSymbolSymbol(TypeBoolean), NameSymbol("b"), AssignerSymbol(AssignSet), LiteralSymbol(BoolLiteral(false))),
		ln(0, 3, BlockSymbol(BlockIf), NameSymbol("a")),
		ln(1, 4, KeywordSymbol(KeywordDump)),
		ln(0, 5, BlockSymbol(BlockElif), NameSymbol("b")),
		ln(1, 6, KeywordSymbol(KeywordDump)),
		ln(0, 7, BlockSymbol(BlockElse)),
		ln(1, 8, KeywordSymbol(KeywordDump)),
	}
	compileAndCheck(t, lines)
}

// while a
//     a = false
//     continue
//     break
func TestCompileWhileWithBreakAndContinue(t *testing.T) {
	lines := []Line{
		ln(0, 1, TypeSymbolSymbol(TypeBoolean), NameSymbol("a"), AssignerSymbol(AssignSet), LiteralSymbol(BoolLiteral(true))),
		ln(0, 2, BlockSymbol(BlockWhile), NameSymbol("a")),
		ln(1, 3, NameSymbol("a"), AssignerSymbol(AssignSet), LiteralSymbol(BoolLiteral(false))),
		ln(1, 4, KeywordSymbol(KeywordContinue)),
		ln(1, 5, KeywordSymbol(KeywordBreak)),
	}
	compileAndCheck(t, lines)
}

// break with no enclosing loop is a compile error.
func TestCompileBreakOutsideLoopFails(t *testing.T) {
	lines := []Line{
		ln(0, 1, KeywordSymbol(KeywordBreak)),
	}
	compileAndCheckError(t, lines)
}

// fn identity(bool x)
//     dump
//
// identity(true)
//
// A plain function is fully quarantined from the scope it is declared
// in: its own body cannot see itself, so this only exercises the
// non-recursive call path.
func TestCompilePlainFunctionCall(t *testing.T) {
	params := [][]Symbol{{TypeSymbolSymbol(TypeBoolean), NameSymbol("x")}}
	lines := []Line{
		ln(0, 1, BlockSymbol(BlockFunction), NameSymbol("identity"), ListSymbol(params)),
		ln(1, 2, KeywordSymbol(KeywordDump)),
		ln(0, 3, NameSymbol("identity"), ListSymbol([][]Symbol{{LiteralSymbol(BoolLiteral(true))}})),
	}
	compileAndCheck(t, lines)
}

// A function body cannot call itself by its own top-level name: the
// depth-limit quarantine that isolates a function from its enclosing
// scope also hides its own just-registered reference.
func TestCompilePlainFunctionCannotRecurse(t *testing.T) {
	lines := []Line{
		ln(0, 1, BlockSymbol(BlockFunction), NameSymbol("loopForever"), ListSymbol(nil)),
		ln(1, 2, NameSymbol("loopForever"), ListSymbol(nil)),
	}
	compileAndCheckError(t, lines)
}

// class Counter
//     bool running = true
//
//     fn tick()
//         self.running = false
//         self.tick()
//
// A method can call itself through self: self is visible one level
// looser than the plain-function quarantine, and the method registers
// onto the class's member map before its own body compiles.
func TestCompileSelfRecursiveMethodCall(t *testing.T) {
	lines := []Line{
		ln(0, 1, BlockSymbol(BlockClass), NameSymbol("Counter")),
		ln(1, 2, TypeSymbolSymbol(TypeBoolean), NameSymbol("running"), AssignerSymbol(AssignSet), LiteralSymbol(BoolLiteral(true))),
		ln(1, 3, BlockSymbol(BlockFunction), NameSymbol("tick"), ListSymbol(nil)),
		ln(2, 4, NameSymbol("self", "running"), AssignerSymbol(AssignSet), LiteralSymbol(BoolLiteral(false))),
		ln(2, 5, NameSymbol("self", "tick"), ListSymbol(nil)),
	}
	compileAndCheck(t, lines)
}

// A class body may not declare a property after it has declared a method.
func TestCompileClassPropertyAfterMethodFails(t *testing.T) {
	lines := []Line{
		ln(0, 1, BlockSymbol(BlockClass), NameSymbol("Bad")),
		ln(1, 2, BlockSymbol(BlockFunction), NameSymbol("m"), ListSymbol(nil)),
		ln(2, 3, KeywordSymbol(KeywordDump)),
		ln(1, 4, TypeSymbolSymbol(TypeBoolean), NameSymbol("late"), AssignerSymbol(AssignSet), LiteralSymbol(BoolLiteral(true))),
	}
	compileAndCheckError(t, lines)
}

// break/continue cannot cross a function boundary even when the function
// itself is nested inside a while loop.
func TestCompileBreakAcrossFunctionBoundaryFails(t *testing.T) {
	lines := []Line{
		ln(0, 1, TypeSymbolSymbol(TypeBoolean), NameSymbol("a"), AssignerSymbol(AssignSet), LiteralSymbol(BoolLiteral(true))),
		ln(0, 2, BlockSymbol(BlockWhile), NameSymbol("a")),
		ln(1, 3, BlockSymbol(BlockFunction), NameSymbol("inner"), ListSymbol(nil)),
		ln(2, 4, KeywordSymbol(KeywordBreak)),
	}
	compileAndCheckError(t, lines)
}

// Referencing an undeclared name is a compile error that carries file
// and line information.
func TestCompileUndeclaredReferenceReportsPosition(t *testing.T) {
	lines := []Line{
		ln(0, 7, KeywordSymbol(KeywordDump)),
		ln(0, 8, NameSymbol("missing"), AssignerSymbol(AssignSet), LiteralSymbol(BoolLiteral(true))),
	}
	err := compileAndCheckError(t, lines)
	var compileErr *CompileError
	assert(t, asCompileError(err, &compileErr), "expected a *CompileError, got %T: %v", err, err)
	assert(t, compileErr.Line == 8, "expected the error to point at line 8, got %d", compileErr.Line)
}

func asCompileError(err error, target **CompileError) bool {
	for err != nil {
		if ce, ok := err.(*CompileError); ok {
			*target = ce
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Declaring the same name twice in the same scope is rejected.
func TestCompileDuplicateDeclarationFails(t *testing.T) {
	lines := []Line{
		ln(0, 1, TypeSymbolSymbol(TypeBoolean), NameSymbol("a"), AssignerSymbol(AssignSet), LiteralSymbol(BoolLiteral(true))),
		ln(0, 2, TypeSymbolSymbol(TypeBoolean), NameSymbol("a"), AssignerSymbol(AssignSet), LiteralSymbol(BoolLiteral(false))),
	}
	compileAndCheckError(t, lines)
}

// Pointer arithmetic casts through `as` and exercises the two's
// complement subtraction emulation.
func TestCompilePointerArithmeticAndCast(t *testing.T) {
	lines := []Line{
		ln(0, 1, TypeSymbolSymbol(TypePointer), NameSymbol("p"), AssignerSymbol(AssignSet),
			LiteralSymbol(IntLiteral(10)), KeywordSymbol(KeywordAs), TypeSymbolSymbol(TypePointer)),
		ln(0, 2, TypeSymbolSymbol(TypePointer), NameSymbol("q"), AssignerSymbol(AssignSet), LiteralSymbol(IntLiteral(4))),
		ln(0, 3, TypeSymbolSymbol(TypePointer), NameSymbol("r"), AssignerSymbol(AssignSet),
			NameSymbol("p"), OperatorSymbol(OpSubtract), NameSymbol("q")),
		ln(0, 4, TypeSymbolSymbol(TypeBoolean), NameSymbol("eq"), AssignerSymbol(AssignSet),
			NameSymbol("r"), OperatorSymbol(OpEqual), NameSymbol("q")),
	}
	compileAndCheck(t, lines)
}
