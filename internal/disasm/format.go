package disasm

import (
	"fmt"
	"strings"

	"github.com/retroenv/chip8emu/internal/chip8"
)

// formatInstruction renders one instruction in assembler syntax, labels
// replace resolvable address operands.
func (dis *Disasm) formatInstruction(ins chip8.Instruction) string {
	operands := dis.formatOperands(ins)
	if operands == "" {
		return ins.Op.Name()
	}
	return fmt.Sprintf("%-4s %s", ins.Op.Name(), operands)
}

func (dis *Disasm) formatOperands(ins chip8.Instruction) string {
	x := ins.X.String()
	y := ins.Y.String()

	switch ins.Op {
	case chip8.Nop, chip8.ClearScreen, chip8.Return:
		return ""

	case chip8.Jump, chip8.Call:
		return dis.formatAddress(ins.Addr)
	case chip8.JumpV0:
		return "V0, " + dis.formatAddress(ins.Addr)
	case chip8.LoadIndex:
		return "I, " + dis.formatAddress(ins.Addr)

	case chip8.SkipEqual, chip8.SkipNotEqual, chip8.LoadByte, chip8.AddByte, chip8.Random:
		return fmt.Sprintf("%s, 0x%02X", x, uint8(ins.Byte))

	case chip8.SkipRegistersEqual, chip8.SkipRegistersNotEqual, chip8.CopyRegister,
		chip8.Or, chip8.And, chip8.Xor, chip8.AddRegister, chip8.Sub, chip8.SubN,
		chip8.ShiftRight, chip8.ShiftLeft:
		return x + ", " + y

	case chip8.Draw:
		return fmt.Sprintf("%s, %s, %d", x, y, uint8(ins.N))

	case chip8.SkipPressed, chip8.SkipNotPressed:
		return x

	case chip8.GetDelayTimer:
		return x + ", DT"
	case chip8.WaitForKey:
		return x + ", K"
	case chip8.SetDelayTimer:
		return "DT, " + x
	case chip8.SetSoundTimer:
		return "ST, " + x
	case chip8.AddIndex:
		return "I, " + x
	case chip8.SpriteAddress:
		return "F, " + x
	case chip8.BCD:
		return "B, " + x
	case chip8.WriteMultiple:
		return "[I], " + x
	case chip8.ReadMultiple:
		return x + ", [I]"
	}
	return ""
}

func (dis *Disasm) formatAddress(addr chip8.Address) string {
	if label, ok := dis.labels[addr]; ok {
		return label
	}
	return fmt.Sprintf("0x%03X", uint16(addr))
}

func formatData(data []byte) string {
	parts := make([]string, 0, len(data))
	for _, b := range data {
		parts = append(parts, fmt.Sprintf("0x%02X", b))
	}
	return ".data " + strings.Join(parts, ", ")
}
