package assembler

import (
	"fmt"
	"strings"

	"github.com/retroenv/chip8emu/internal/chip8"
)

type statementKind uint8

const (
	stmtInstruction statementKind = iota
	stmtLabel
	stmtConstant
	stmtData
	stmtAssertAddress
)

// operand is one argument of an instruction, either a register, one of the
// special operand keywords or a value that the second pass resolves to a number.
type operand struct {
	kind     operandKind
	register chip8.GeneralRegister
	value    uint16 // numeric literal
	name     string // label or constant reference
}

type operandKind uint8

const (
	opRegister operandKind = iota
	opNumber
	opLabelRef
	opConstantRef
	opIndex      // I
	opIndexRef   // [I]
	opDelayTimer // DT
	opSoundTimer // ST
	opKey        // K
	opFont       // F
	opBCD        // B
)

// statement is one parsed source line.
type statement struct {
	kind     statementKind
	mnemonic string    // stmtInstruction
	operands []operand // stmtInstruction
	name     string    // stmtLabel, stmtConstant
	value    operand   // stmtConstant, stmtAssertAddress
	data     []uint16  // stmtData
	line     int
}

// parseLine turns one token line into statements. A label may share its line
// with a following statement, the colon acts as a line break.
func parseLine(tokens []token) ([]*statement, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	first := tokens[0]

	switch first.kind {
	case tokenIdent:
		if len(tokens) > 1 && tokens[1].kind == tokenColon {
			label := &statement{kind: stmtLabel, name: first.text, line: first.line}
			rest, err := parseLine(tokens[2:])
			if err != nil {
				return nil, err
			}
			return append([]*statement{label}, rest...), nil
		}
		return one(parseInstruction(tokens))

	case tokenConstant:
		return one(parseConstant(tokens))

	case tokenDirective:
		return one(parseDirective(tokens))

	case tokenNumber:
		return nil, fmt.Errorf("line %d: raw data needs the .data directive", first.line)

	default:
		return nil, fmt.Errorf("line %d: no rules expected this token", first.line)
	}
}

func one(stmt *statement, err error) ([]*statement, error) {
	if err != nil {
		return nil, err
	}
	return []*statement{stmt}, nil
}

// parseConstant handles `$name = value` definitions. The value is a number
// or an already defined constant.
func parseConstant(tokens []token) (*statement, error) {
	first := tokens[0]
	if len(tokens) != 3 || tokens[1].kind != tokenEquals {
		return nil, fmt.Errorf("line %d: constants are defined as $name = value", first.line)
	}

	value, err := parseOperand(tokens[2])
	if err != nil {
		return nil, err
	}
	if value.kind != opNumber && value.kind != opConstantRef {
		return nil, fmt.Errorf("line %d: constant value must be numeric or a constant", first.line)
	}
	return &statement{kind: stmtConstant, name: first.text, value: value, line: first.line}, nil
}

func parseDirective(tokens []token) (*statement, error) {
	first := tokens[0]

	switch strings.ToLower(first.text) {
	case "data":
		return parseData(tokens)

	case "assert_addr":
		if len(tokens) != 2 {
			return nil, fmt.Errorf("line %d: .assert_addr expects a single address", first.line)
		}
		value, err := parseOperand(tokens[1])
		if err != nil {
			return nil, err
		}
		if value.kind != opNumber && value.kind != opConstantRef {
			return nil, fmt.Errorf("line %d: the asserted address must be numeric", first.line)
		}
		return &statement{kind: stmtAssertAddress, value: value, line: first.line}, nil

	default:
		return nil, fmt.Errorf("line %d: unknown directive .%s", first.line, first.text)
	}
}

// parseData handles `.data n, n, ...`, a comma separated byte list.
func parseData(tokens []token) (*statement, error) {
	first := tokens[0]
	if len(tokens) < 2 {
		return nil, fmt.Errorf("line %d: .data needs at least one value", first.line)
	}

	var data []uint16
	expectNumber := true
	for _, tok := range tokens[1:] {
		if expectNumber {
			if tok.kind != tokenNumber {
				return nil, fmt.Errorf("line %d: expected a number in the data list", tok.line)
			}
			if tok.value > 0xFF {
				return nil, fmt.Errorf("line %d: data value %d does not fit a byte", tok.line, tok.value)
			}
			data = append(data, tok.value)
		} else if tok.kind != tokenComma {
			return nil, fmt.Errorf("line %d: expected a comma or the end of the list", tok.line)
		}
		expectNumber = !expectNumber
	}
	if expectNumber {
		return nil, fmt.Errorf("line %d: trailing comma in data list", first.line)
	}
	return &statement{kind: stmtData, data: data, line: first.line}, nil
}

func parseInstruction(tokens []token) (*statement, error) {
	first := tokens[0]
	stmt := &statement{
		kind:     stmtInstruction,
		mnemonic: strings.ToUpper(first.text),
		line:     first.line,
	}

	expectOperand := true
	for _, tok := range tokens[1:] {
		if expectOperand {
			op, err := parseOperand(tok)
			if err != nil {
				return nil, err
			}
			stmt.operands = append(stmt.operands, op)
		} else if tok.kind != tokenComma {
			return nil, fmt.Errorf("line %d: operands are separated by commas", tok.line)
		}
		expectOperand = !expectOperand
	}
	if expectOperand && len(stmt.operands) > 0 {
		return nil, fmt.Errorf("line %d: trailing comma", first.line)
	}
	return stmt, nil
}

func parseOperand(tok token) (operand, error) {
	switch tok.kind {
	case tokenNumber:
		return operand{kind: opNumber, value: tok.value}, nil

	case tokenConstant:
		return operand{kind: opConstantRef, name: tok.text}, nil

	case tokenIndexRef:
		return operand{kind: opIndexRef}, nil

	case tokenIdent:
		return classifyIdent(tok)

	default:
		return operand{}, fmt.Errorf("line %d: unexpected token in operand position", tok.line)
	}
}

// classifyIdent distinguishes registers and the special operand keywords
// from label references.
func classifyIdent(tok token) (operand, error) {
	upper := strings.ToUpper(tok.text)

	if len(upper) == 2 && upper[0] == 'V' {
		if nib, ok := hexNibble(upper[1]); ok {
			return operand{kind: opRegister, register: chip8.RegisterFromNibble(nib)}, nil
		}
	}

	switch upper {
	case "I":
		return operand{kind: opIndex}, nil
	case "DT":
		return operand{kind: opDelayTimer}, nil
	case "ST":
		return operand{kind: opSoundTimer}, nil
	case "K":
		return operand{kind: opKey}, nil
	case "F":
		return operand{kind: opFont}, nil
	case "B":
		return operand{kind: opBCD}, nil
	}
	return operand{kind: opLabelRef, name: tok.text}, nil
}

func hexNibble(ch byte) (chip8.Nibble, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return chip8.Nibble(ch - '0'), true
	case ch >= 'A' && ch <= 'F':
		return chip8.Nibble(ch-'A') + 10, true
	default:
		return 0, false
	}
}
