package lexer

import (
	"fmt"
	"strings"

	"github.com/Robert-M-Lucas/whython-6/compiler"
)

// Lex tokenizes source into the Line stream the compiler package
// consumes. fileName is only used for diagnostics. Blank lines and
// comment-only lines are dropped rather than kept as empty-symbol
// lines, since an empty line carries no indentation intent of its own
// and should never force the block coordinator to dedent.
func Lex(fileName string, source string) ([]compiler.Line, error) {
	var lines []compiler.Line

	for i, raw := range strings.Split(source, "\n") {
		lineNo := i + 1
		if strings.TrimSpace(raw) == "" || strings.TrimSpace(raw)[0] == commentChar {
			continue
		}
		indent, consumed, err := countIndent(raw)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", fileName, lineNo, err)
		}

		symbols, err := splitLineSymbols(raw[consumed:])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", fileName, lineNo, err)
		}
		if len(symbols) == 0 {
			continue
		}

		if symbols[0].Kind == compiler.SymKeyword && symbols[0].Keyword == compiler.KeywordImport {
			return nil, fmt.Errorf("%s:%d: 'import' is not supported", fileName, lineNo)
		}

		lines = append(lines, compiler.Line{
			File:    fileName,
			LineNo:  lineNo,
			Indent:  indent,
			Symbols: symbols,
		})
	}

	return lines, nil
}
