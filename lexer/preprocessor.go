package lexer

import (
	"fmt"

	"github.com/Robert-M-Lucas/whython-6/compiler"
)

// splitLineSymbols tokenizes one (already indentation-stripped,
// comment-free) source line into symbols, recursing into bracketed
// sections so nested expressions and argument lists parse correctly.
func splitLineSymbols(line string) ([]compiler.Symbol, error) {
	var symbols []compiler.Symbol
	var buffer []byte
	inString := byte(0)
	escaped := false
	bracketDepth := 0

	flush := func() error {
		if len(buffer) == 0 {
			return nil
		}
		sym, err := classifyToken(string(buffer))
		if err != nil {
			return err
		}
		symbols = append(symbols, sym)
		buffer = buffer[:0]
		return nil
	}

	for i := 0; i < len(line); i++ {
		c := line[i]

		if inString != 0 {
			if escaped {
				buffer = append(buffer, c)
				escaped = false
				continue
			}
			if c == escapeChar {
				buffer = append(buffer, c)
				escaped = true
				continue
			}
			if c == inString {
				buffer = append(buffer, c)
				inString = 0
				if err := flush(); err != nil {
					return nil, err
				}
				continue
			}
			buffer = append(buffer, c)
			continue
		}

		if c == stringDelim || c == charDelim {
			buffer = append(buffer, c)
			inString = c
			continue
		}

		if c == commentChar && bracketDepth == 0 {
			break
		}

		if bracketDepth == 0 {
			switch c {
			case ' ', '\t':
				if err := flush(); err != nil {
					return nil, err
				}
				continue
			case listSeparator:
				if err := flush(); err != nil {
					return nil, err
				}
				symbols = append(symbols, compiler.PunctuationSymbol(compiler.PunctListSeparator))
				continue
			}
		}

		if c == openBracket {
			if bracketDepth != 0 {
				buffer = append(buffer, c)
			} else if err := flush(); err != nil {
				return nil, err
			}
			bracketDepth++
			continue
		}

		if c == closeBracket {
			bracketDepth--
			switch {
			case bracketDepth == 0:
				inner, err := splitLineSymbols(string(buffer))
				if err != nil {
					return nil, err
				}
				symbols = append(symbols, groupBracketedSymbols(inner))
				buffer = buffer[:0]
			case bracketDepth < 0:
				return nil, fmt.Errorf("closing bracket found with no corresponding opening bracket")
			default:
				buffer = append(buffer, c)
			}
			continue
		}

		buffer = append(buffer, c)
	}

	if inString != 0 {
		return nil, fmt.Errorf("unclosed string or char literal")
	}
	if bracketDepth != 0 {
		return nil, fmt.Errorf("unclosed brackets")
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return symbols, nil
}

// groupBracketedSymbols turns a bracket's inner symbols into a List (if
// it contains top-level comma separators, even a single trailing one) or
// a plain BracketedSection otherwise.
func groupBracketedSymbols(inner []compiler.Symbol) compiler.Symbol {
	if len(inner) == 0 {
		return compiler.ListSymbol(nil)
	}

	hasSeparator := false
	for _, s := range inner {
		if s.Kind == compiler.SymPunctuation && s.Punctuation == compiler.PunctListSeparator {
			hasSeparator = true
			break
		}
	}
	if !hasSeparator {
		return compiler.BracketedSectionSymbol(inner)
	}

	var list [][]compiler.Symbol
	var item []compiler.Symbol
	for _, s := range inner {
		if s.Kind == compiler.SymPunctuation && s.Punctuation == compiler.PunctListSeparator {
			list = append(list, item)
			item = nil
			continue
		}
		item = append(item, s)
	}
	if len(item) > 0 {
		list = append(list, item)
	}
	return compiler.ListSymbol(list)
}

// countIndent measures leading whitespace the way the original does:
// spaces count one, tabs count four, and the total must land on a
// 4-space boundary. It returns the indentation in block-levels and the
// number of leading bytes consumed.
func countIndent(line string) (level int, consumed int, err error) {
	count := 0
	i := 0
	for i < len(line) {
		switch line[i] {
		case ' ':
			count++
		case '\t':
			count += indentUnit
		default:
			goto done
		}
		i++
	}
done:
	if count%indentUnit != 0 {
		return 0, 0, fmt.Errorf("indentation must be a multiple of %d spaces or single tabs", indentUnit)
	}
	return count / indentUnit, i, nil
}
