package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDatumNibbles(t *testing.T) {
	high, low := Datum(0xAB).Nibbles()
	assert.Equal(t, Nibble(0xA), high)
	assert.Equal(t, Nibble(0xB), low)

	assert.Equal(t, Datum(0xAB), high.ByteWith(low))
}

func TestDatumTowardsZero(t *testing.T) {
	d := Datum(2)
	assert.True(t, d.TowardsZero())
	assert.Equal(t, Datum(1), d)
	assert.True(t, d.TowardsZero())
	assert.Equal(t, Datum(0), d)
	assert.False(t, d.TowardsZero())
	assert.Equal(t, Datum(0), d)
}

func TestAddressFromWordMasks(t *testing.T) {
	assert.Equal(t, Address(0x234), AddressFromWord(0x1234))
	assert.Equal(t, Address(0xFFF), AddressFromWord(0xFFFF))
}

func TestAddressFromNibbles(t *testing.T) {
	assert.Equal(t, Address(0xABC), AddressFromNibbles(0xA, 0xB, 0xC))

	high, mid, low := Address(0xABC).Nibbles()
	assert.Equal(t, Nibble(0xA), high)
	assert.Equal(t, Nibble(0xB), mid)
	assert.Equal(t, Nibble(0xC), low)
}

func TestAddressIncrementOverflow(t *testing.T) {
	a := Address(0xFFE)
	a.Increment()
	assert.Equal(t, MaxAddress, a)

	defer func() {
		assert.NotNil(t, recover(), "incrementing the maximum address must panic")
	}()
	a.Increment()
}

func TestKeysFromVector(t *testing.T) {
	var vector [NumKeys]bool
	vector[0x3] = true
	vector[0xC] = true

	keys := KeysFromVector(vector)
	assert.True(t, keys.Pressed())
	assert.Equal(t, Keys(1<<0x3|1<<0xC), keys)
}

func TestKeysOneKey(t *testing.T) {
	tests := []struct {
		name     string
		keys     Keys
		expected Datum
		ok       bool
	}{
		{"no key", 0, 0, false},
		{"single key", 1 << 0x7, 0x7, true},
		{"two keys", 1<<0x1 | 1<<0x2, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := tt.keys.OneKey()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, key)
		})
	}
}

func TestKeyFromDatum(t *testing.T) {
	assert.Equal(t, Keys(1<<0xA), KeyFromDatum(0x0A))
	// only the low nibble selects the key
	assert.Equal(t, Keys(1<<0x5), KeyFromDatum(0xF5))
}

func TestRegisterString(t *testing.T) {
	assert.Equal(t, "V0", V0.String())
	assert.Equal(t, "VF", VF.String())
}
