package runtime

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/Robert-M-Lucas/whython-6/compiler"
	"github.com/Robert-M-Lucas/whython-6/lexer"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	if !cond {
		t.Fatalf(fmt.Sprintf("%v %s", cond, format), args...)
	}
}

func compileSource(t *testing.T, source string) []byte {
	lines, err := lexer.Lex("test.why", source)
	assert(t, err == nil, "lex failed: %v", err)
	mem, err := compiler.Compile(lines)
	assert(t, err == nil, "compile failed: %v", err)
	return mem.Bytes()
}

func runAndCapture(t *testing.T, source string) string {
	program := compileSource(t, source)
	var out bytes.Buffer
	err := RunProgram(program, &out)
	assert(t, err == nil, "run failed: %v", err)
	return out.String()
}

func TestRunEmptyProgramHaltsCleanly(t *testing.T) {
	program := compileSource(t, "")
	var out bytes.Buffer
	err := RunProgram(program, &out)
	assert(t, err == nil, "expected clean shutdown, got %v", err)
}

func TestRunDumpProducesOutput(t *testing.T) {
	out := runAndCapture(t, "bool flag = true\ndump\n")
	assert(t, strings.Contains(out, "stack"), "expected dump output, got %q", out)
}

func TestRunViewMemoryShowsBooleanValue(t *testing.T) {
	out := runAndCapture(t, "bool flag = true\nviewmemdec flag\n")
	assert(t, strings.TrimSpace(out) == "255", "expected decimal 255, got %q", out)

	out = runAndCapture(t, "bool flag = false\nviewmemdec flag\n")
	assert(t, strings.TrimSpace(out) == "0", "expected decimal 0, got %q", out)
}

func TestRunBooleanOperators(t *testing.T) {
	out := runAndCapture(t, strings.Join([]string{
		"bool a = true",
		"bool b = false",
		"bool c = a & b",
		"viewmemdec c",
		"bool d = a | b",
		"viewmemdec d",
		"bool e = ! a",
		"viewmemdec e",
	}, "\n") + "\n")
	lines := strings.Fields(out)
	assert(t, len(lines) == 3, "expected 3 viewmemdec lines, got %v", lines)
	assert(t, lines[0] == "0", "a & b should be false, got %s", lines[0])
	assert(t, lines[1] == "255", "a | b should be true, got %s", lines[1])
	assert(t, lines[2] == "0", "!a should be false, got %s", lines[2])
}

func TestRunIfElseChain(t *testing.T) {
	out := runAndCapture(t, strings.Join([]string{
		"bool cond = false",
		"if cond",
		"    viewmemdec cond",
		"else",
		"    bool x = true",
		"    viewmemdec x",
	}, "\n") + "\n")
	assert(t, strings.TrimSpace(out) == "255", "expected else branch to run, got %q", out)
}

func TestRunWhileLoopWithBreak(t *testing.T) {
	out := runAndCapture(t, strings.Join([]string{
		"bool running = true",
		"while running",
		"    running = false",
		"    viewmemdec running",
		"    break",
	}, "\n") + "\n")
	assert(t, strings.TrimSpace(out) == "0", "expected loop body to run exactly once, got %q", out)
}

func TestRunPlainFunctionCall(t *testing.T) {
	out := runAndCapture(t, strings.Join([]string{
		"fn announce()",
		"    bool x = true",
		"    viewmemdec x",
		"announce()",
		"announce()",
	}, "\n") + "\n")
	assert(t, out == "255\n255\n", "expected two calls to each print 255, got %q", out)
}

func TestRunFunctionWithParameter(t *testing.T) {
	out := runAndCapture(t, strings.Join([]string{
		"fn show(bool v)",
		"    viewmemdec v",
		"show(true)",
		"show(false)",
	}, "\n") + "\n")
	assert(t, out == "255\n0\n", "expected parameter values to be reflected back, got %q", out)
}

func TestRunSelfRecursiveMethodCallTerminates(t *testing.T) {
	out := runAndCapture(t, strings.Join([]string{
		"class counter",
		"    bool done = false",
		"    fn tick()",
		"        bool already = self.done",
		"        if already",
		"            viewmemdec already",
		"        else",
		"            self.done = true",
		"            self.tick()",
		"counter.tick()",
	}, "\n") + "\n")
	assert(t, strings.TrimSpace(out) == "255", "expected recursive call to terminate and print 255, got %q", out)
}

// TestRunPointerWhileBreakScenario is spec section 8's mandatory
// Pointer while/break end-to-end scenario: it exercises `!=` as a loop
// condition and `==` inside the body, both against Pointer operands.
func TestRunPointerWhileBreakScenario(t *testing.T) {
	out := runAndCapture(t, strings.Join([]string{
		"ptr i = 0 as ptr",
		"while i != (10 as ptr)",
		"    i += 1 as ptr",
		"    if i == (5 as ptr)",
		"        break",
		"viewmemdec i",
	}, "\n") + "\n")
	assert(t, strings.TrimSpace(out) == "5", "expected loop to break at 5, got %q", out)
}

// TestRunPointerEqualityDoesNotCorruptFollowingStack guards against a
// Pointer `==`/`!=` comparison writing its 8-byte operand width to a
// 1-byte Boolean destination cell: if it did, the stack bytes
// immediately after the Boolean (where later declarations land) would
// be zeroed out from underneath them.
func TestRunPointerEqualityDoesNotCorruptFollowingStack(t *testing.T) {
	out := runAndCapture(t, strings.Join([]string{
		"ptr a = 10 as ptr",
		"ptr b = 10 as ptr",
		"ptr c = 3 as ptr",
		"bool eq = a == b",
		"bool neq = a != c",
		"ptr d = 77 as ptr",
		"viewmemdec eq",
		"viewmemdec neq",
		"viewmemdec d",
	}, "\n") + "\n")
	lines := strings.Fields(out)
	assert(t, len(lines) == 3, "expected 3 viewmemdec lines, got %v", lines)
	assert(t, lines[0] == "255", "a == b should be true, got %s", lines[0])
	assert(t, lines[1] == "255", "a != c should be true, got %s", lines[1])
	assert(t, lines[2] == "77", "d should be unaffected by the comparisons above it, got %s", lines[2])
}

func TestRunPointerArithmetic(t *testing.T) {
	out := runAndCapture(t, strings.Join([]string{
		"ptr p = 10",
		"ptr q = 4",
		"ptr r = p + q",
		"viewmemdec r",
		"ptr s = p - q",
		"viewmemdec s",
	}, "\n") + "\n")
	lines := strings.Fields(out)
	assert(t, len(lines) == 2, "expected 2 viewmemdec lines, got %v", lines)
	assert(t, lines[0] == "14", "p + q should be 14, got %s", lines[0])
	assert(t, lines[1] == "6", "p - q should be 6, got %s", lines[1])
}
