package chip8

// RawInstruction is the two-byte wire encoding of one instruction, stored as
// a big-endian 16-bit word.
type RawInstruction uint16

// RawFromBytes combines the two bytes fetched from memory into a raw
// instruction, first byte high.
func RawFromBytes(first, second Datum) RawInstruction {
	return RawInstruction(first)<<8 | RawInstruction(second)
}

// First returns the high byte of the instruction.
func (r RawInstruction) First() Datum {
	return Datum(r >> 8)
}

// Second returns the low byte of the instruction.
func (r RawInstruction) Second() Datum {
	return Datum(r)
}

// Nibbles decomposes the instruction into its four nibbles, used for
// opcode-family dispatch.
func (r RawInstruction) Nibbles() [4]Nibble {
	n1, n2 := r.First().Nibbles()
	n3, n4 := r.Second().Nibbles()
	return [4]Nibble{n1, n2, n3, n4}
}

// Op identifies one of the 35 operations of the instruction set.
type Op uint8

// The instruction set. The comment names the opcode bit pattern.
const (
	Nop                   Op = iota // 0000
	ClearScreen                     // 00E0
	Return                          // 00EE
	Jump                            // 1nnn
	Call                            // 2nnn
	SkipEqual                       // 3xkk
	SkipNotEqual                    // 4xkk
	SkipRegistersEqual              // 5xy0
	LoadByte                        // 6xkk
	AddByte                         // 7xkk
	CopyRegister                    // 8xy0
	Or                              // 8xy1
	And                             // 8xy2
	Xor                             // 8xy3
	AddRegister                     // 8xy4
	Sub                             // 8xy5
	ShiftRight                      // 8xy6
	SubN                            // 8xy7
	ShiftLeft                       // 8xyE
	SkipRegistersNotEqual           // 9xy0
	LoadIndex                       // Annn
	JumpV0                          // Bnnn
	Random                          // Cxkk
	Draw                            // Dxyn
	SkipPressed                     // Ex9E
	SkipNotPressed                  // ExA1
	GetDelayTimer                   // Fx07
	WaitForKey                      // Fx0A
	SetDelayTimer                   // Fx15
	SetSoundTimer                   // Fx18
	AddIndex                        // Fx1E
	SpriteAddress                   // Fx29
	BCD                             // Fx33
	WriteMultiple                   // Fx55
	ReadMultiple                    // Fx65
)

// opNames maps operations to their assembly mnemonics.
var opNames = [...]string{
	Nop:                   "NOP",
	ClearScreen:           "CLS",
	Return:                "RET",
	Jump:                  "JP",
	Call:                  "CALL",
	SkipEqual:             "SE",
	SkipNotEqual:          "SNE",
	SkipRegistersEqual:    "SE",
	LoadByte:              "LD",
	AddByte:               "ADD",
	CopyRegister:          "LD",
	Or:                    "OR",
	And:                   "AND",
	Xor:                   "XOR",
	AddRegister:           "ADD",
	Sub:                   "SUB",
	ShiftRight:            "SHR",
	SubN:                  "SUBN",
	ShiftLeft:             "SHL",
	SkipRegistersNotEqual: "SNE",
	LoadIndex:             "LD",
	JumpV0:                "JP",
	Random:                "RND",
	Draw:                  "DRW",
	SkipPressed:           "SKP",
	SkipNotPressed:        "SKNP",
	GetDelayTimer:         "LD",
	WaitForKey:            "LD",
	SetDelayTimer:         "LD",
	SetSoundTimer:         "LD",
	AddIndex:              "ADD",
	SpriteAddress:         "LD",
	BCD:                   "LD",
	WriteMultiple:         "LD",
	ReadMultiple:          "LD",
}

// Name returns the assembly mnemonic of the operation.
func (o Op) Name() string {
	if int(o) >= len(opNames) {
		return "???"
	}
	return opNames[o]
}

// Instruction is one decoded operation together with exactly the operands its
// opcode encodes. Unused operand fields are zero, so two instructions compare
// equal iff they decode from the same raw word. Immutable once decoded.
type Instruction struct {
	Op   Op
	X    GeneralRegister // first register operand
	Y    GeneralRegister // second register operand
	Byte Datum           // 8-bit immediate
	Addr Address         // 12-bit address operand
	N    Nibble          // 4-bit count operand
}
