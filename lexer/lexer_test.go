package lexer

import (
	"fmt"
	"testing"

	"github.com/Robert-M-Lucas/whython-6/compiler"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	if !cond {
		t.Fatalf(fmt.Sprintf("%v %s", cond, format), args...)
	}
}

func TestLexSimpleDeclaration(t *testing.T) {
	lines, err := Lex("t.why", "bool flag = true\ndump\n")
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, len(lines) == 2, "expected 2 lines, got %d", len(lines))
	assert(t, lines[0].Symbols[0].Kind == compiler.SymType, "expected first symbol to be a type")
	assert(t, lines[0].Symbols[1].Kind == compiler.SymName, "expected second symbol to be a name")
	assert(t, lines[1].Symbols[0].Keyword == compiler.KeywordDump, "expected dump keyword")
}

func TestLexIndentationLevels(t *testing.T) {
	src := "while true\n    dump\n        dump\n"
	lines, err := Lex("t.why", src)
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, lines[0].Indent == 0, "expected indent 0, got %d", lines[0].Indent)
	assert(t, lines[1].Indent == 1, "expected indent 1, got %d", lines[1].Indent)
	assert(t, lines[2].Indent == 2, "expected indent 2, got %d", lines[2].Indent)
}

func TestLexRejectsMisalignedIndentation(t *testing.T) {
	_, err := Lex("t.why", "if true\n   dump\n")
	assert(t, err != nil, "expected an error for 3-space indentation")
}

func TestLexBlankAndCommentLinesDropped(t *testing.T) {
	src := "dump\n\n# a full line comment\n   \ndump\n"
	lines, err := Lex("t.why", src)
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, len(lines) == 2, "expected blank/comment lines to be dropped, got %d lines", len(lines))
}

func TestLexCallWithMultipleArguments(t *testing.T) {
	lines, err := Lex("t.why", "add(1, 2)\n")
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, len(lines[0].Symbols) == 2, "expected [name, list]")
	list := lines[0].Symbols[1]
	assert(t, list.Kind == compiler.SymList, "expected a list symbol")
	assert(t, len(list.List) == 2, "expected 2 arguments, got %d", len(list.List))
}

func TestLexCallWithSingleArgumentIsBracketedSection(t *testing.T) {
	lines, err := Lex("t.why", "identity(true)\n")
	assert(t, err == nil, "unexpected error: %v", err)
	arg := lines[0].Symbols[1]
	assert(t, arg.Kind == compiler.SymBracketedSection, "expected a bracketed section for a single argument, got %v", arg.Kind)
	assert(t, len(arg.Section) == 1, "expected one symbol inside the section")
}

func TestLexEmptyArgumentListIsEmptyList(t *testing.T) {
	lines, err := Lex("t.why", "tick()\n")
	assert(t, err == nil, "unexpected error: %v", err)
	arg := lines[0].Symbols[1]
	assert(t, arg.Kind == compiler.SymList, "expected an empty list for no arguments")
	assert(t, len(arg.List) == 0, "expected zero arguments, got %d", len(arg.List))
}

func TestLexStringAndCharLiteralsWithEscapes(t *testing.T) {
	lines, err := Lex("t.why", `dump "line\n" 'x'`+"\n")
	assert(t, err == nil, "unexpected error: %v", err)
	symbols := lines[0].Symbols
	assert(t, len(symbols) == 3, "expected 3 symbols, got %d", len(symbols))
	assert(t, symbols[1].Literal.Str == "line\n", "expected escape to be resolved, got %q", symbols[1].Literal.Str)
	assert(t, symbols[2].Literal.Char == 'x', "expected char literal 'x', got %q", symbols[2].Literal.Char)
}

func TestLexDottedNameAndSelfReserved(t *testing.T) {
	lines, err := Lex("t.why", "self.running = false\n")
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, len(lines[0].Symbols[0].Name) == 2, "expected a dotted two-part name")

	_, err = Lex("t.why", "bool self = true\n")
	assert(t, err != nil, "expected declaring a variable named 'self' to fail")
}

func TestLexRejectsImport(t *testing.T) {
	_, err := Lex("t.why", "import other.why\n")
	assert(t, err != nil, "expected import to be rejected")
}

func TestLexNestedBracketedExpression(t *testing.T) {
	lines, err := Lex("t.why", "bool a = (x == y)\n")
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, lines[0].Symbols[3].Kind == compiler.SymBracketedSection, "expected a bracketed section for the grouped expression")
	assert(t, len(lines[0].Symbols[3].Section) == 3, "expected 3 symbols in the group, got %d", len(lines[0].Symbols[3].Section))
}
