package chip8

import "fmt"

// UnknownOpcodeError is returned when a raw word matches no instruction
// pattern. It carries the raw bytes for diagnostics.
type UnknownOpcodeError struct {
	Raw RawInstruction
}

func (e UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode $%04X", uint16(e.Raw))
}

// Decode maps a raw two-byte word onto its instruction. Dispatch follows the
// longest fixed nibble prefix of each pattern; any word not covered by the
// table returns an UnknownOpcodeError.
func Decode(raw RawInstruction) (Instruction, error) {
	n := raw.Nibbles()
	x := RegisterFromNibble(n[1])
	y := RegisterFromNibble(n[2])
	kk := n[2].ByteWith(n[3])
	addr := AddressFromNibbles(n[1], n[2], n[3])

	switch n[0] {
	case 0x0:
		switch {
		case raw == 0x0000:
			return Instruction{Op: Nop}, nil
		case raw == 0x00E0:
			return Instruction{Op: ClearScreen}, nil
		case raw == 0x00EE:
			return Instruction{Op: Return}, nil
		}
	case 0x1:
		return Instruction{Op: Jump, Addr: addr}, nil
	case 0x2:
		return Instruction{Op: Call, Addr: addr}, nil
	case 0x3:
		return Instruction{Op: SkipEqual, X: x, Byte: kk}, nil
	case 0x4:
		return Instruction{Op: SkipNotEqual, X: x, Byte: kk}, nil
	case 0x5:
		if n[3] == 0x0 {
			return Instruction{Op: SkipRegistersEqual, X: x, Y: y}, nil
		}
	case 0x6:
		return Instruction{Op: LoadByte, X: x, Byte: kk}, nil
	case 0x7:
		return Instruction{Op: AddByte, X: x, Byte: kk}, nil
	case 0x8:
		if op, ok := decodeALU(n[3]); ok {
			return Instruction{Op: op, X: x, Y: y}, nil
		}
	case 0x9:
		if n[3] == 0x0 {
			return Instruction{Op: SkipRegistersNotEqual, X: x, Y: y}, nil
		}
	case 0xA:
		return Instruction{Op: LoadIndex, Addr: addr}, nil
	case 0xB:
		return Instruction{Op: JumpV0, Addr: addr}, nil
	case 0xC:
		return Instruction{Op: Random, X: x, Byte: kk}, nil
	case 0xD:
		return Instruction{Op: Draw, X: x, Y: y, N: n[3]}, nil
	case 0xE:
		switch kk {
		case 0x9E:
			return Instruction{Op: SkipPressed, X: x}, nil
		case 0xA1:
			return Instruction{Op: SkipNotPressed, X: x}, nil
		}
	case 0xF:
		if op, ok := decodeMisc(kk); ok {
			return Instruction{Op: op, X: x}, nil
		}
	}
	return Instruction{}, UnknownOpcodeError{Raw: raw}
}

// decodeALU maps the low nibble of the 8xy_ family onto its operation.
func decodeALU(n Nibble) (Op, bool) {
	switch n {
	case 0x0:
		return CopyRegister, true
	case 0x1:
		return Or, true
	case 0x2:
		return And, true
	case 0x3:
		return Xor, true
	case 0x4:
		return AddRegister, true
	case 0x5:
		return Sub, true
	case 0x6:
		return ShiftRight, true
	case 0x7:
		return SubN, true
	case 0xE:
		return ShiftLeft, true
	}
	return 0, false
}

// decodeMisc maps the low byte of the Fx__ family onto its operation.
func decodeMisc(kk Datum) (Op, bool) {
	switch kk {
	case 0x07:
		return GetDelayTimer, true
	case 0x0A:
		return WaitForKey, true
	case 0x15:
		return SetDelayTimer, true
	case 0x18:
		return SetSoundTimer, true
	case 0x1E:
		return AddIndex, true
	case 0x29:
		return SpriteAddress, true
	case 0x33:
		return BCD, true
	case 0x55:
		return WriteMultiple, true
	case 0x65:
		return ReadMultiple, true
	}
	return 0, false
}
