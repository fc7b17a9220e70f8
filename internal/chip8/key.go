package chip8

// NumKeys is the number of keys on the CHIP-8 keypad.
const NumKeys = 16

// Keys is the state of the 16-key keypad as a bit set, bit n set meaning
// key n is held down.
type Keys uint16

// KeysFromVector converts the host driver's per-key boolean vector into a
// key set.
func KeysFromVector(vector [NumKeys]bool) Keys {
	var keys Keys
	for i, pressed := range vector {
		if pressed {
			keys |= 1 << i
		}
	}
	return keys
}

// KeyFromDatum returns the key set holding only the key named by the low
// nibble of the datum.
func KeyFromDatum(d Datum) Keys {
	return 1 << (d & 0x0F)
}

// Pressed reports whether any key in the set is held down.
func (k Keys) Pressed() bool {
	return k != 0
}

// OneKey returns the value of the single held key. It reports false if no key
// or more than one key is held, an ambiguous state for the key-wait
// instruction.
func (k Keys) OneKey() (Datum, bool) {
	for i := Datum(0); i < NumKeys; i++ {
		if k == 1<<i {
			return i, true
		}
	}
	return 0, false
}
