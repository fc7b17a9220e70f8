// Package memory models the 4KB CHIP-8 address space. The low 512 bytes are
// reserved for the interpreter and hold the built-in hexadecimal font table,
// the loaded program occupies the rest.
package memory

import (
	"fmt"

	"github.com/retroenv/chip8emu/internal/chip8"
)

// GlyphSize is the size in bytes of one font glyph, 16 glyphs cover the hex
// digits 0-F.
const GlyphSize = 5

// fontData is the built-in font table, one 5-byte glyph per hex digit,
// embedded at chip8.FontStart.
var fontData = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// GlyphAddress returns the address of the font glyph for the given hex digit.
func GlyphAddress(digit chip8.Datum) chip8.Address {
	return chip8.FontStart + chip8.Address(digit)*GlyphSize
}

// Memory is the full addressable byte array, exclusively owned by the
// execution engine and mutated only through indexed writes.
type Memory struct {
	data [chip8.NumAddresses]chip8.Datum
}

// New returns memory holding the font table and zero-fill, without a program.
func New() *Memory {
	m := &Memory{}
	for i, b := range fontData {
		m.data[int(chip8.FontStart)+i] = chip8.Datum(b)
	}
	return m
}

// NewFromROM returns memory with the font table in the reserved area and the
// ROM image placed at chip8.ProgramStart.
func NewFromROM(rom *ROM) *Memory {
	m := New()
	copy(m.data[chip8.ProgramStart:], rom.data[:])
	return m
}

// Read returns the byte at the given address.
func (m *Memory) Read(addr chip8.Address) chip8.Datum {
	return m.data[addr]
}

// Write stores the byte at the given address.
func (m *Memory) Write(addr chip8.Address, value chip8.Datum) {
	m.data[addr] = value
}

// Substring returns the count bytes starting at addr, used for sprite reads.
// Reading past the end of the address space is a fatal condition.
func (m *Memory) Substring(addr chip8.Address, count chip8.Nibble) []chip8.Datum {
	end := int(addr) + int(count)
	if end > chip8.NumAddresses {
		panic(fmt.Sprintf("memory read of %d bytes at %s runs past the address space", count, addr))
	}
	return m.data[addr:end]
}
