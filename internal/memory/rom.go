package memory

import (
	"fmt"

	"github.com/retroenv/chip8emu/internal/chip8"
)

// ROMSize is the fixed size of a program image: the address space minus the
// interpreter-reserved area.
const ROMSize = chip8.NumAddresses - int(chip8.ProgramStart)

// OversizeError is returned when a program image does not fit the address
// space.
type OversizeError struct {
	Size int
}

func (e OversizeError) Error() string {
	return fmt.Sprintf("ROM size %d exceeds the maximum of %d bytes", e.Size, ROMSize)
}

// ROM is a fixed-size program image as placed at chip8.ProgramStart.
type ROM struct {
	data [ROMSize]chip8.Datum
}

// NewROM builds a program image from raw bytes. Shorter inputs are
// zero-padded, longer inputs are rejected with an OversizeError.
func NewROM(bytes []byte) (*ROM, error) {
	if len(bytes) > ROMSize {
		return nil, OversizeError{Size: len(bytes)}
	}

	rom := &ROM{}
	for i, b := range bytes {
		rom.data[i] = chip8.Datum(b)
	}
	return rom, nil
}

// Bytes returns the full fixed-size image as raw bytes.
func (r *ROM) Bytes() []byte {
	out := make([]byte, ROMSize)
	for i, d := range r.data {
		out[i] = byte(d)
	}
	return out
}

// Memory converts the image into engine memory.
func (r *ROM) Memory() *Memory {
	return NewFromROM(r)
}
