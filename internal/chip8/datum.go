package chip8

import "fmt"

// Datum is an 8-bit quantity as stored in memory, registers and timers.
type Datum uint8

// Nibbles decomposes the datum into its high and low 4-bit halves.
func (d Datum) Nibbles() (high, low Nibble) {
	return Nibble(d >> 4), Nibble(d & 0x0F)
}

// TowardsZero decrements the datum by one if it is nonzero and reports
// whether it moved. Used by the 60 Hz timer tick.
func (d *Datum) TowardsZero() bool {
	if *d == 0 {
		return false
	}
	*d--
	return true
}

// Nibble is a 4-bit half-byte, the unit instructions are decoded in.
// The value is always in [0, 15].
type Nibble uint8

// ByteWith combines the nibble as high half with low into a full datum.
func (n Nibble) ByteWith(low Nibble) Datum {
	return Datum(n)<<4 | Datum(low)
}

func (n Nibble) String() string {
	return fmt.Sprintf("%X", uint8(n))
}
