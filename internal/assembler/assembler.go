// Package assembler translates assembly source into ROM images. The dialect
// uses the conventional mnemonics, labels terminated by a colon, constants
// defined as $name = value and the directives .data and .assert_addr.
package assembler

import (
	"fmt"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/memory"
)

// Assemble translates the source into a ROM image.
func Assemble(source string) (*memory.ROM, error) {
	program, err := AssembleBytes(source)
	if err != nil {
		return nil, err
	}

	rom, err := memory.NewROM(program)
	if err != nil {
		return nil, fmt.Errorf("creating ROM: %w", err)
	}
	return rom, nil
}

// AssembleBytes translates the source and returns the raw program bytes
// without padding them to ROM size.
func AssembleBytes(source string) ([]byte, error) {
	lines, err := tokenize(source)
	if err != nil {
		return nil, err
	}

	var statements []*statement
	for _, line := range lines {
		parsed, err := parseLine(line)
		if err != nil {
			return nil, err
		}
		statements = append(statements, parsed...)
	}

	asm := &assembly{
		constants: map[string]uint16{},
		labels:    map[string]chip8.Address{},
	}
	if err := asm.layout(statements); err != nil {
		return nil, err
	}
	return asm.emit(statements)
}

// assembly holds the state shared between the two passes. The first pass
// lays out the location counter and binds labels and constants, the second
// encodes instructions with every reference resolved.
type assembly struct {
	constants map[string]uint16
	labels    map[string]chip8.Address
}

func (a *assembly) layout(statements []*statement) error {
	counter := chip8.ProgramStart

	for _, stmt := range statements {
		switch stmt.kind {
		case stmtConstant:
			if _, ok := a.constants[stmt.name]; ok {
				return fmt.Errorf("line %d: constant %q defined twice", stmt.line, stmt.name)
			}
			value, err := a.resolveValue(stmt.value, stmt.line)
			if err != nil {
				return err
			}
			a.constants[stmt.name] = value

		case stmtLabel:
			if _, ok := a.labels[stmt.name]; ok {
				return fmt.Errorf("line %d: label %q defined twice", stmt.line, stmt.name)
			}
			a.labels[stmt.name] = counter

		case stmtAssertAddress:
			expected, err := a.resolveValue(stmt.value, stmt.line)
			if err != nil {
				return err
			}
			if counter != chip8.Address(expected) {
				return fmt.Errorf("line %d: address assertion failed, at %s but expected %s",
					stmt.line, counter, chip8.Address(expected))
			}

		case stmtInstruction:
			counter += 2

		case stmtData:
			counter += chip8.Address(len(stmt.data))
		}

		if counter > chip8.MaxAddress+1 {
			return fmt.Errorf("line %d: program exceeds the address space", stmt.line)
		}
	}
	return nil
}

func (a *assembly) emit(statements []*statement) ([]byte, error) {
	var out []byte

	for _, stmt := range statements {
		switch stmt.kind {
		case stmtInstruction:
			ins, err := a.encodeStatement(stmt)
			if err != nil {
				return nil, err
			}
			raw := chip8.Encode(ins)
			out = append(out, byte(raw.First()), byte(raw.Second()))

		case stmtData:
			for _, value := range stmt.data {
				out = append(out, byte(value))
			}
		}
	}
	return out, nil
}

// resolveValue turns a numeric, constant or label operand into its number.
// Constants must be defined before they are referenced.
func (a *assembly) resolveValue(op operand, line int) (uint16, error) {
	switch op.kind {
	case opNumber:
		return op.value, nil
	case opConstantRef:
		value, ok := a.constants[op.name]
		if !ok {
			return 0, fmt.Errorf("line %d: unknown constant $%s", line, op.name)
		}
		return value, nil
	case opLabelRef:
		addr, ok := a.labels[op.name]
		if !ok {
			return 0, fmt.Errorf("line %d: unknown label %q", line, op.name)
		}
		return uint16(addr), nil
	default:
		return 0, fmt.Errorf("line %d: expected a value", line)
	}
}

func (a *assembly) address(op operand, line int) (chip8.Address, error) {
	value, err := a.resolveValue(op, line)
	if err != nil {
		return 0, err
	}
	if value > uint16(chip8.MaxAddress) {
		return 0, fmt.Errorf("line %d: address %#x out of range", line, value)
	}
	return chip8.Address(value), nil
}

func (a *assembly) byteValue(op operand, line int) (chip8.Datum, error) {
	value, err := a.resolveValue(op, line)
	if err != nil {
		return 0, err
	}
	if value > 0xFF {
		return 0, fmt.Errorf("line %d: value %d does not fit a byte", line, value)
	}
	return chip8.Datum(value), nil
}

func (a *assembly) nibbleValue(op operand, line int) (chip8.Nibble, error) {
	value, err := a.resolveValue(op, line)
	if err != nil {
		return 0, err
	}
	if value > 0xF {
		return 0, fmt.Errorf("line %d: value %d does not fit a nibble", line, value)
	}
	return chip8.Nibble(value), nil
}
