package assembler

import (
	"fmt"

	"github.com/retroenv/chip8emu/internal/chip8"
)

// encodeStatement maps a mnemonic and its operands onto an instruction.
// Overloaded mnemonics like LD and ADD dispatch on the operand forms.
func (a *assembly) encodeStatement(stmt *statement) (chip8.Instruction, error) {
	switch stmt.mnemonic {
	case "NOP":
		return a.noOperands(stmt, chip8.Nop)
	case "CLS":
		return a.noOperands(stmt, chip8.ClearScreen)
	case "RET":
		return a.noOperands(stmt, chip8.Return)
	case "JP":
		return a.encodeJump(stmt)
	case "CALL":
		return a.addressOperand(stmt, chip8.Call)
	case "SE":
		return a.registerThenByteOrRegister(stmt, chip8.SkipEqual, chip8.SkipRegistersEqual)
	case "SNE":
		return a.registerThenByteOrRegister(stmt, chip8.SkipNotEqual, chip8.SkipRegistersNotEqual)
	case "LD":
		return a.encodeLoad(stmt)
	case "ADD":
		return a.encodeAdd(stmt)
	case "OR":
		return a.twoRegisters(stmt, chip8.Or)
	case "AND":
		return a.twoRegisters(stmt, chip8.And)
	case "XOR":
		return a.twoRegisters(stmt, chip8.Xor)
	case "SUB":
		return a.twoRegisters(stmt, chip8.Sub)
	case "SUBN":
		return a.twoRegisters(stmt, chip8.SubN)
	case "SHR":
		return a.shift(stmt, chip8.ShiftRight)
	case "SHL":
		return a.shift(stmt, chip8.ShiftLeft)
	case "RND":
		return a.registerThenByte(stmt, chip8.Random)
	case "DRW":
		return a.encodeDraw(stmt)
	case "SKP":
		return a.oneRegister(stmt, chip8.SkipPressed)
	case "SKNP":
		return a.oneRegister(stmt, chip8.SkipNotPressed)
	default:
		return chip8.Instruction{}, fmt.Errorf("line %d: unknown instruction %q", stmt.line, stmt.mnemonic)
	}
}

func (a *assembly) encodeJump(stmt *statement) (chip8.Instruction, error) {
	// JP addr or JP V0, addr
	if len(stmt.operands) == 2 && stmt.operands[0].kind == opRegister {
		if stmt.operands[0].register != chip8.V0 {
			return chip8.Instruction{}, fmt.Errorf("line %d: offset jumps only use V0", stmt.line)
		}
		addr, err := a.address(stmt.operands[1], stmt.line)
		if err != nil {
			return chip8.Instruction{}, err
		}
		return chip8.Instruction{Op: chip8.JumpV0, Addr: addr}, nil
	}
	return a.addressOperand(stmt, chip8.Jump)
}

func (a *assembly) encodeLoad(stmt *statement) (chip8.Instruction, error) {
	if len(stmt.operands) != 2 {
		return chip8.Instruction{}, operandsError(stmt)
	}
	dst, src := stmt.operands[0], stmt.operands[1]

	switch dst.kind {
	case opRegister:
		switch src.kind {
		case opRegister:
			return chip8.Instruction{Op: chip8.CopyRegister, X: dst.register, Y: src.register}, nil
		case opDelayTimer:
			return chip8.Instruction{Op: chip8.GetDelayTimer, X: dst.register}, nil
		case opKey:
			return chip8.Instruction{Op: chip8.WaitForKey, X: dst.register}, nil
		case opIndexRef:
			return chip8.Instruction{Op: chip8.ReadMultiple, X: dst.register}, nil
		default:
			value, err := a.byteValue(src, stmt.line)
			if err != nil {
				return chip8.Instruction{}, err
			}
			return chip8.Instruction{Op: chip8.LoadByte, X: dst.register, Byte: value}, nil
		}

	case opIndex:
		addr, err := a.address(src, stmt.line)
		if err != nil {
			return chip8.Instruction{}, err
		}
		return chip8.Instruction{Op: chip8.LoadIndex, Addr: addr}, nil

	case opDelayTimer:
		return a.sourceRegister(stmt, src, chip8.SetDelayTimer)
	case opSoundTimer:
		return a.sourceRegister(stmt, src, chip8.SetSoundTimer)
	case opFont:
		return a.sourceRegister(stmt, src, chip8.SpriteAddress)
	case opBCD:
		return a.sourceRegister(stmt, src, chip8.BCD)
	case opIndexRef:
		return a.sourceRegister(stmt, src, chip8.WriteMultiple)
	default:
		return chip8.Instruction{}, operandsError(stmt)
	}
}

func (a *assembly) encodeAdd(stmt *statement) (chip8.Instruction, error) {
	if len(stmt.operands) != 2 {
		return chip8.Instruction{}, operandsError(stmt)
	}
	dst, src := stmt.operands[0], stmt.operands[1]

	if dst.kind == opIndex {
		return a.sourceRegister(stmt, src, chip8.AddIndex)
	}
	return a.registerThenByteOrRegister(stmt, chip8.AddByte, chip8.AddRegister)
}

func (a *assembly) encodeDraw(stmt *statement) (chip8.Instruction, error) {
	if len(stmt.operands) != 3 ||
		stmt.operands[0].kind != opRegister || stmt.operands[1].kind != opRegister {
		return chip8.Instruction{}, operandsError(stmt)
	}
	height, err := a.nibbleValue(stmt.operands[2], stmt.line)
	if err != nil {
		return chip8.Instruction{}, err
	}
	return chip8.Instruction{
		Op: chip8.Draw,
		X:  stmt.operands[0].register,
		Y:  stmt.operands[1].register,
		N:  height,
	}, nil
}

func (a *assembly) noOperands(stmt *statement, op chip8.Op) (chip8.Instruction, error) {
	if len(stmt.operands) != 0 {
		return chip8.Instruction{}, operandsError(stmt)
	}
	return chip8.Instruction{Op: op}, nil
}

func (a *assembly) oneRegister(stmt *statement, op chip8.Op) (chip8.Instruction, error) {
	if len(stmt.operands) != 1 || stmt.operands[0].kind != opRegister {
		return chip8.Instruction{}, operandsError(stmt)
	}
	return chip8.Instruction{Op: op, X: stmt.operands[0].register}, nil
}

func (a *assembly) twoRegisters(stmt *statement, op chip8.Op) (chip8.Instruction, error) {
	if len(stmt.operands) != 2 ||
		stmt.operands[0].kind != opRegister || stmt.operands[1].kind != opRegister {
		return chip8.Instruction{}, operandsError(stmt)
	}
	return chip8.Instruction{
		Op: op,
		X:  stmt.operands[0].register,
		Y:  stmt.operands[1].register,
	}, nil
}

// shift accepts both the one and two register forms, the second register is
// encoded but ignored by the machine.
func (a *assembly) shift(stmt *statement, op chip8.Op) (chip8.Instruction, error) {
	if len(stmt.operands) == 1 && stmt.operands[0].kind == opRegister {
		return chip8.Instruction{Op: op, X: stmt.operands[0].register}, nil
	}
	return a.twoRegisters(stmt, op)
}

func (a *assembly) registerThenByte(stmt *statement, op chip8.Op) (chip8.Instruction, error) {
	if len(stmt.operands) != 2 || stmt.operands[0].kind != opRegister {
		return chip8.Instruction{}, operandsError(stmt)
	}
	value, err := a.byteValue(stmt.operands[1], stmt.line)
	if err != nil {
		return chip8.Instruction{}, err
	}
	return chip8.Instruction{Op: op, X: stmt.operands[0].register, Byte: value}, nil
}

func (a *assembly) registerThenByteOrRegister(stmt *statement, byteOp, registerOp chip8.Op) (chip8.Instruction, error) {
	if len(stmt.operands) == 2 && stmt.operands[1].kind == opRegister {
		return a.twoRegisters(stmt, registerOp)
	}
	return a.registerThenByte(stmt, byteOp)
}

func (a *assembly) addressOperand(stmt *statement, op chip8.Op) (chip8.Instruction, error) {
	if len(stmt.operands) != 1 {
		return chip8.Instruction{}, operandsError(stmt)
	}
	addr, err := a.address(stmt.operands[0], stmt.line)
	if err != nil {
		return chip8.Instruction{}, err
	}
	return chip8.Instruction{Op: op, Addr: addr}, nil
}

func (a *assembly) sourceRegister(stmt *statement, src operand, op chip8.Op) (chip8.Instruction, error) {
	if src.kind != opRegister {
		return chip8.Instruction{}, operandsError(stmt)
	}
	return chip8.Instruction{Op: op, X: src.register}, nil
}

func operandsError(stmt *statement) error {
	return fmt.Errorf("line %d: invalid operands for %s", stmt.line, stmt.mnemonic)
}
