package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		raw      RawInstruction
		expected Instruction
	}{
		{"nop", 0x0000, Instruction{Op: Nop}},
		{"clear screen", 0x00E0, Instruction{Op: ClearScreen}},
		{"return", 0x00EE, Instruction{Op: Return}},
		{"jump", 0x1234, Instruction{Op: Jump, Addr: 0x234}},
		{"call", 0x2ABC, Instruction{Op: Call, Addr: 0xABC}},
		{"skip equal", 0x3A42, Instruction{Op: SkipEqual, X: VA, Byte: 0x42}},
		{"skip not equal", 0x4B10, Instruction{Op: SkipNotEqual, X: VB, Byte: 0x10}},
		{"skip registers equal", 0x5120, Instruction{Op: SkipRegistersEqual, X: V1, Y: V2}},
		{"load byte", 0x6CFF, Instruction{Op: LoadByte, X: VC, Byte: 0xFF}},
		{"add byte", 0x7301, Instruction{Op: AddByte, X: V3, Byte: 0x01}},
		{"copy register", 0x8120, Instruction{Op: CopyRegister, X: V1, Y: V2}},
		{"or", 0x8121, Instruction{Op: Or, X: V1, Y: V2}},
		{"and", 0x8122, Instruction{Op: And, X: V1, Y: V2}},
		{"xor", 0x8123, Instruction{Op: Xor, X: V1, Y: V2}},
		{"add register", 0x8124, Instruction{Op: AddRegister, X: V1, Y: V2}},
		{"sub", 0x8125, Instruction{Op: Sub, X: V1, Y: V2}},
		{"shift right", 0x8126, Instruction{Op: ShiftRight, X: V1, Y: V2}},
		{"subn", 0x8127, Instruction{Op: SubN, X: V1, Y: V2}},
		{"shift left", 0x812E, Instruction{Op: ShiftLeft, X: V1, Y: V2}},
		{"skip registers not equal", 0x9120, Instruction{Op: SkipRegistersNotEqual, X: V1, Y: V2}},
		{"load index", 0xA300, Instruction{Op: LoadIndex, Addr: 0x300}},
		{"jump v0", 0xB300, Instruction{Op: JumpV0, Addr: 0x300}},
		{"random", 0xC07F, Instruction{Op: Random, X: V0, Byte: 0x7F}},
		{"draw", 0xD125, Instruction{Op: Draw, X: V1, Y: V2, N: 5}},
		{"skip pressed", 0xE29E, Instruction{Op: SkipPressed, X: V2}},
		{"skip not pressed", 0xE2A1, Instruction{Op: SkipNotPressed, X: V2}},
		{"get delay timer", 0xF407, Instruction{Op: GetDelayTimer, X: V4}},
		{"wait for key", 0xF30A, Instruction{Op: WaitForKey, X: V3}},
		{"set delay timer", 0xF515, Instruction{Op: SetDelayTimer, X: V5}},
		{"set sound timer", 0xF618, Instruction{Op: SetSoundTimer, X: V6}},
		{"add index", 0xF71E, Instruction{Op: AddIndex, X: V7}},
		{"sprite address", 0xF829, Instruction{Op: SpriteAddress, X: V8}},
		{"bcd", 0xF933, Instruction{Op: BCD, X: V9}},
		{"write multiple", 0xF255, Instruction{Op: WriteMultiple, X: V2}},
		{"read multiple", 0xF265, Instruction{Op: ReadMultiple, X: V2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, err := Decode(tt.raw)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, ins)
		})
	}
}

func TestDecodeUnknownOpcode(t *testing.T) {
	tests := []struct {
		name string
		raw  RawInstruction
	}{
		{"sys call", 0x0123},
		{"5xy with low nibble", 0x5121},
		{"8xy undefined alu", 0x8128},
		{"9xy with low nibble", 0x9121},
		{"Ex undefined", 0xE200},
		{"Fx undefined", 0xF2FF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			assert.Error(t, err)

			var unknownErr UnknownOpcodeError
			assert.True(t, errors.As(err, &unknownErr))
			assert.Equal(t, tt.raw, unknownErr.Raw)
		})
	}
}

// TestCodecRoundTrip iterates all 65536 raw words: every word that decodes
// must re-encode and re-decode to an equal instruction. This catches any
// many-to-one encoding collision.
func TestCodecRoundTrip(t *testing.T) {
	decoded := 0
	for word := 0; word <= 0xFFFF; word++ {
		raw := RawInstruction(word)
		ins, err := Decode(raw)
		if err != nil {
			continue
		}
		decoded++

		reencoded := Encode(ins)
		again, err := Decode(reencoded)
		assert.NoError(t, err, "re-decoding $%04X failed", word)
		assert.Equal(t, ins, again, "round trip mismatch for $%04X", word)
	}

	// The table covers all 35 operation patterns, so a large share of the
	// word space decodes.
	assert.True(t, decoded > 20000, "unexpectedly few decodable words: %d", decoded)
}

// TestEncodeCanonical verifies that decode(encode(x)) == x for every
// operation with representative operands, i.e. encode is the exact inverse.
func TestEncodeCanonical(t *testing.T) {
	instructions := []Instruction{
		{Op: Nop},
		{Op: ClearScreen},
		{Op: Return},
		{Op: Jump, Addr: 0xFFF},
		{Op: Call, Addr: 0x200},
		{Op: SkipEqual, X: VF, Byte: 0xAB},
		{Op: SkipNotEqual, X: V0, Byte: 0x00},
		{Op: SkipRegistersEqual, X: VE, Y: V1},
		{Op: LoadByte, X: V5, Byte: 0x77},
		{Op: AddByte, X: V6, Byte: 0x80},
		{Op: CopyRegister, X: V7, Y: V8},
		{Op: Or, X: V9, Y: VA},
		{Op: And, X: VB, Y: VC},
		{Op: Xor, X: VD, Y: VE},
		{Op: AddRegister, X: V0, Y: VF},
		{Op: Sub, X: V1, Y: V0},
		{Op: ShiftRight, X: V2},
		{Op: SubN, X: V3, Y: V4},
		{Op: ShiftLeft, X: V4},
		{Op: SkipRegistersNotEqual, X: V5, Y: V6},
		{Op: LoadIndex, Addr: 0x050},
		{Op: JumpV0, Addr: 0x234},
		{Op: Random, X: V7, Byte: 0x0F},
		{Op: Draw, X: V8, Y: V9, N: 0xF},
		{Op: SkipPressed, X: VA},
		{Op: SkipNotPressed, X: VB},
		{Op: GetDelayTimer, X: VC},
		{Op: WaitForKey, X: VD},
		{Op: SetDelayTimer, X: VE},
		{Op: SetSoundTimer, X: VF},
		{Op: AddIndex, X: V0},
		{Op: SpriteAddress, X: V1},
		{Op: BCD, X: V2},
		{Op: WriteMultiple, X: V3},
		{Op: ReadMultiple, X: V4},
	}

	for _, ins := range instructions {
		decoded, err := Decode(Encode(ins))
		assert.NoError(t, err)
		assert.Equal(t, ins, decoded)
	}
}
