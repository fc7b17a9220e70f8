package assembler

import (
	"fmt"
	"strconv"
	"strings"
)

type tokenKind uint8

const (
	tokenIdent     tokenKind = iota // mnemonic, register or label reference
	tokenNumber                     // decimal or 0x-prefixed hex literal
	tokenConstant                   // $name
	tokenDirective                  // .name
	tokenIndexRef                   // [I]
	tokenComma
	tokenColon
	tokenEquals
)

type token struct {
	kind  tokenKind
	text  string
	value uint16
	line  int
}

// tokenize splits the source into tokens grouped by line. Comments start
// with ; and run to the end of the line.
func tokenize(source string) ([][]token, error) {
	var lines [][]token

	for index, text := range strings.Split(source, "\n") {
		line, err := tokenizeLine(text, index+1)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func tokenizeLine(text string, lineNumber int) ([]token, error) {
	var tokens []token

	pos := 0
	for pos < len(text) {
		ch := text[pos]

		switch {
		case ch == ';':
			return tokens, nil

		case ch == ' ' || ch == '\t' || ch == '\r':
			pos++

		case ch == ',':
			tokens = append(tokens, token{kind: tokenComma, line: lineNumber})
			pos++

		case ch == ':':
			tokens = append(tokens, token{kind: tokenColon, line: lineNumber})
			pos++

		case ch == '=':
			tokens = append(tokens, token{kind: tokenEquals, line: lineNumber})
			pos++

		case ch == '[':
			rest := strings.ToUpper(text[pos:])
			if !strings.HasPrefix(rest, "[I]") {
				return nil, fmt.Errorf("line %d: expected [I]", lineNumber)
			}
			tokens = append(tokens, token{kind: tokenIndexRef, line: lineNumber})
			pos += 3

		case ch == '$' || ch == '.':
			kind := tokenConstant
			if ch == '.' {
				kind = tokenDirective
			}
			name, length := scanIdent(text[pos+1:])
			if length == 0 {
				return nil, fmt.Errorf("line %d: %q needs a name", lineNumber, ch)
			}
			tokens = append(tokens, token{kind: kind, text: name, line: lineNumber})
			pos += 1 + length

		case ch >= '0' && ch <= '9':
			literal, length := scanNumber(text[pos:])
			value, err := parseNumber(literal)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid number %q", lineNumber, literal)
			}
			tokens = append(tokens, token{kind: tokenNumber, value: value, line: lineNumber})
			pos += length

		case isIdentChar(ch):
			name, length := scanIdent(text[pos:])
			tokens = append(tokens, token{kind: tokenIdent, text: name, line: lineNumber})
			pos += length

		default:
			return nil, fmt.Errorf("line %d: unrecognised character %q", lineNumber, ch)
		}
	}
	return tokens, nil
}

func scanIdent(text string) (string, int) {
	end := 0
	for end < len(text) && (isIdentChar(text[end]) || text[end] >= '0' && text[end] <= '9') {
		end++
	}
	return text[:end], end
}

func scanNumber(text string) (string, int) {
	end := 0
	for end < len(text) && (text[end] >= '0' && text[end] <= '9' ||
		text[end] == 'x' || text[end] == 'X' || isHexLetter(text[end])) {
		end++
	}
	return text[:end], end
}

func parseNumber(literal string) (uint16, error) {
	var value uint64
	var err error

	lower := strings.ToLower(literal)
	if hex, ok := strings.CutPrefix(lower, "0x"); ok {
		value, err = strconv.ParseUint(hex, 16, 16)
	} else {
		value, err = strconv.ParseUint(literal, 10, 16)
	}
	if err != nil {
		return 0, err
	}
	return uint16(value), nil
}

func isIdentChar(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isHexLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F'
}
