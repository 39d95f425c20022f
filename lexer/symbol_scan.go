package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Robert-M-Lucas/whython-6/compiler"
)

const nameChars = "abcdefghijklmnopqrstuvwxyz_"

// classifyToken converts one already-isolated token into a symbol. The
// dispatch order - assigner, operator, type, block, literal, keyword,
// then name - matches the precedence the original lexer tries symbol
// categories in, so a word that happens to coincide with a keyword or
// type name is never misread as an identifier.
func classifyToken(token string) (compiler.Symbol, error) {
	if a, ok := compiler.AssignerFromCode(token); ok {
		return compiler.AssignerSymbol(a), nil
	}
	if op, ok := compiler.OperatorFromCode(token); ok {
		return compiler.OperatorSymbol(op), nil
	}
	if t, ok := compiler.TypeSymbolFromCode(token); ok {
		return compiler.TypeSymbolSymbol(t), nil
	}
	if b, ok := compiler.BlockFromCode(token); ok {
		return compiler.BlockSymbol(b), nil
	}
	if lit, ok, err := classifyLiteral(token); err != nil {
		return compiler.Symbol{}, err
	} else if ok {
		return compiler.LiteralSymbol(lit), nil
	}
	if k, ok := compiler.KeywordFromCode(token); ok {
		return compiler.KeywordSymbol(k), nil
	}
	return classifyName(token)
}

func classifyLiteral(token string) (compiler.Literal, bool, error) {
	switch token {
	case "true":
		return compiler.BoolLiteral(true), true, nil
	case "false":
		return compiler.BoolLiteral(false), true, nil
	case "none":
		return compiler.NoneLiteral(), true, nil
	}

	if len(token) >= 2 {
		first := token[0]
		last := token[len(token)-1]
		if (first == stringDelim || first == charDelim) && first == last {
			body := formatEscapes(token[1 : len(token)-1])
			if first == charDelim {
				runes := []rune(body)
				if len(runes) != 1 {
					return compiler.Literal{}, false, fmt.Errorf("char literals cannot contain multiple characters")
				}
				return compiler.CharLiteral(runes[0]), true, nil
			}
			return compiler.StringLiteral(body), true, nil
		}
	}

	if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		return compiler.IntLiteral(n), true, nil
	}

	return compiler.Literal{}, false, nil
}

func classifyName(token string) (compiler.Symbol, error) {
	for _, c := range token {
		if c == nameSeparator || strings.ContainsRune(nameChars, c) {
			continue
		}
		return compiler.Symbol{}, fmt.Errorf("'%s' is not recognised and is not a valid name (contains '%c')", token, c)
	}

	parts := strings.Split(token, string(nameSeparator))
	for i, p := range parts {
		if p == "" {
			return compiler.Symbol{}, fmt.Errorf("'%s' is not a valid name", token)
		}
		// self may only lead a dotted path (self.x); on its own or
		// further along a path it is reserved.
		if p == compiler.SelfName && (i != 0 || len(parts) == 1) {
			return compiler.Symbol{}, fmt.Errorf("'%s' is a reserved name", p)
		}
		if _, ok := compiler.KeywordFromCode(p); ok {
			return compiler.Symbol{}, fmt.Errorf("'%s' is a reserved name", p)
		}
	}

	return compiler.NameSymbol(parts...), nil
}
