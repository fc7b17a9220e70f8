package chip8

import "fmt"

// GeneralRegister names one of the 16 general purpose registers V0-VF.
// VF doubles as the flag register for carry, borrow and collision bits but is
// addressable like any other register.
type GeneralRegister uint8

// The 16 general purpose registers.
const (
	V0 GeneralRegister = iota
	V1
	V2
	V3
	V4
	V5
	V6
	V7
	V8
	V9
	VA
	VB
	VC
	VD
	VE
	VF
)

// NumRegisters is the number of general purpose registers.
const NumRegisters = 16

// RegisterFromNibble maps an opcode operand nibble to its register.
func RegisterFromNibble(n Nibble) GeneralRegister {
	return GeneralRegister(n)
}

// Index returns the register's position in the register file.
func (r GeneralRegister) Index() int {
	return int(r)
}

// Nibble returns the register's operand nibble for instruction encoding.
func (r GeneralRegister) Nibble() Nibble {
	return Nibble(r)
}

func (r GeneralRegister) String() string {
	return fmt.Sprintf("V%X", uint8(r))
}
