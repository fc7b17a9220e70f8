package chip8

import "fmt"

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: interpreter reserved area, holds the font table at 0x050
//	0x200-0xFFF: user program space (3584 bytes)
const (
	// ProgramStart is the memory address where CHIP-8 programs begin execution.
	ProgramStart Address = 0x200

	// FontStart is the memory address of the built-in hexadecimal glyph table.
	FontStart Address = 0x050

	// MaxAddress is the highest valid address in CHIP-8 memory space.
	MaxAddress Address = 0xFFF

	// NumAddresses is the total size of the address space in bytes.
	NumAddresses = int(MaxAddress) + 1
)

// Address is a location in the 12-bit CHIP-8 address space, always in
// [0, MaxAddress].
type Address uint16

// AddressFromWord masks a raw 16-bit value down to the 12-bit address range.
func AddressFromWord(word uint16) Address {
	return Address(word) & MaxAddress
}

// AddressFromNibbles builds an address from the three operand nibbles of a
// jump, call or load-index instruction.
func AddressFromNibbles(high, mid, low Nibble) Address {
	return Address(high)<<8 | Address(mid)<<4 | Address(low)
}

// Increment advances the address by one. Running past the end of the address
// space is a fatal condition, emulated programs are expected never to reach it.
func (a *Address) Increment() {
	if *a == MaxAddress {
		panic("address overflow")
	}
	*a++
}

// Nibbles decomposes the address into its three operand nibbles.
func (a Address) Nibbles() (high, mid, low Nibble) {
	return Nibble(a >> 8 & 0x0F), Nibble(a >> 4 & 0x0F), Nibble(a & 0x0F)
}

func (a Address) String() string {
	return fmt.Sprintf("$%03X", uint16(a))
}
