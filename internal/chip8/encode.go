package chip8

import "fmt"

// Encode maps an instruction back onto its raw two-byte word. Encoding is
// total over all constructible instructions and is the exact inverse of
// Decode for every word the decoder accepts.
func Encode(ins Instruction) RawInstruction {
	x := RawInstruction(ins.X.Nibble()) << 8
	y := RawInstruction(ins.Y.Nibble()) << 4
	kk := RawInstruction(ins.Byte)
	addr := RawInstruction(ins.Addr & MaxAddress)

	switch ins.Op {
	case Nop:
		return 0x0000
	case ClearScreen:
		return 0x00E0
	case Return:
		return 0x00EE
	case Jump:
		return 0x1000 | addr
	case Call:
		return 0x2000 | addr
	case SkipEqual:
		return 0x3000 | x | kk
	case SkipNotEqual:
		return 0x4000 | x | kk
	case SkipRegistersEqual:
		return 0x5000 | x | y
	case LoadByte:
		return 0x6000 | x | kk
	case AddByte:
		return 0x7000 | x | kk
	case CopyRegister:
		return 0x8000 | x | y
	case Or:
		return 0x8001 | x | y
	case And:
		return 0x8002 | x | y
	case Xor:
		return 0x8003 | x | y
	case AddRegister:
		return 0x8004 | x | y
	case Sub:
		return 0x8005 | x | y
	case ShiftRight:
		return 0x8006 | x | y
	case SubN:
		return 0x8007 | x | y
	case ShiftLeft:
		return 0x800E | x | y
	case SkipRegistersNotEqual:
		return 0x9000 | x | y
	case LoadIndex:
		return 0xA000 | addr
	case JumpV0:
		return 0xB000 | addr
	case Random:
		return 0xC000 | x | kk
	case Draw:
		return 0xD000 | x | y | RawInstruction(ins.N&0x0F)
	case SkipPressed:
		return 0xE09E | x
	case SkipNotPressed:
		return 0xE0A1 | x
	case GetDelayTimer:
		return 0xF007 | x
	case WaitForKey:
		return 0xF00A | x
	case SetDelayTimer:
		return 0xF015 | x
	case SetSoundTimer:
		return 0xF018 | x
	case AddIndex:
		return 0xF01E | x
	case SpriteAddress:
		return 0xF029 | x
	case BCD:
		return 0xF033 | x
	case WriteMultiple:
		return 0xF055 | x
	case ReadMultiple:
		return 0xF065 | x
	}
	panic(fmt.Sprintf("encode: unhandled operation %d", ins.Op))
}
