package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/control"
	"github.com/retroenv/chip8emu/internal/memory"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// newTestEngine assembles the instructions into a ROM and loads it.
func newTestEngine(t *testing.T, instructions ...chip8.Instruction) *Engine {
	t.Helper()

	bytes := make([]byte, 0, len(instructions)*2)
	for _, ins := range instructions {
		raw := chip8.Encode(ins)
		bytes = append(bytes, byte(raw.First()), byte(raw.Second()))
	}
	rom, err := memory.NewROM(bytes)
	assert.NoError(t, err)

	return NewFromROM(log.NewTestLogger(t), rom)
}

func step(e *Engine) *control.FrameInfo {
	frame := &control.FrameInfo{}
	e.Step(0, frame)
	return frame
}

func TestAddRegisterCarry(t *testing.T) {
	tests := []struct {
		name         string
		x, y         chip8.Datum
		expected     chip8.Datum
		expectedFlag chip8.Datum
	}{
		{"overflow", 0xFF, 0x01, 0x00, 1},
		{"no overflow", 0x01, 0x01, 0x02, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, chip8.Instruction{Op: chip8.AddRegister, X: chip8.V0, Y: chip8.V1})
			e.SetRegister(chip8.V0, tt.x)
			e.SetRegister(chip8.V1, tt.y)

			step(e)

			assert.Equal(t, tt.expected, e.Register(chip8.V0))
			assert.Equal(t, tt.expectedFlag, e.Register(chip8.VF))
		})
	}
}

func TestSubFlagInversion(t *testing.T) {
	tests := []struct {
		name         string
		x, y         chip8.Datum
		expected     chip8.Datum
		expectedFlag chip8.Datum
	}{
		{"minuend greater", 0x05, 0x03, 0x02, 1},
		{"minuend smaller wraps", 0x03, 0x05, 0xFE, 0},
		{"equal values", 0x04, 0x04, 0x00, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, chip8.Instruction{Op: chip8.Sub, X: chip8.V2, Y: chip8.V3})
			e.SetRegister(chip8.V2, tt.x)
			e.SetRegister(chip8.V3, tt.y)

			step(e)

			assert.Equal(t, tt.expected, e.Register(chip8.V2))
			assert.Equal(t, tt.expectedFlag, e.Register(chip8.VF))
		})
	}
}

func TestSubNFlag(t *testing.T) {
	e := newTestEngine(t, chip8.Instruction{Op: chip8.SubN, X: chip8.V0, Y: chip8.V1})
	e.SetRegister(chip8.V0, 0x01)
	e.SetRegister(chip8.V1, 0x05)

	step(e)

	assert.Equal(t, chip8.Datum(0x04), e.Register(chip8.V0))
	assert.Equal(t, chip8.Datum(1), e.Register(chip8.VF))
}

func TestShiftFlags(t *testing.T) {
	t.Run("right shift keeps LSB", func(t *testing.T) {
		e := newTestEngine(t, chip8.Instruction{Op: chip8.ShiftRight, X: chip8.V0})
		e.SetRegister(chip8.V0, 0b00000101)

		step(e)

		assert.Equal(t, chip8.Datum(0b00000010), e.Register(chip8.V0))
		assert.Equal(t, chip8.Datum(1), e.Register(chip8.VF))
	})

	t.Run("left shift keeps MSB", func(t *testing.T) {
		e := newTestEngine(t, chip8.Instruction{Op: chip8.ShiftLeft, X: chip8.V0})
		e.SetRegister(chip8.V0, 0b10000001)

		step(e)

		assert.Equal(t, chip8.Datum(0b00000010), e.Register(chip8.V0))
		assert.Equal(t, chip8.Datum(1), e.Register(chip8.VF))
	})
}

func TestBlockTransferInclusive(t *testing.T) {
	e := newTestEngine(t, chip8.Instruction{Op: chip8.WriteMultiple, X: chip8.V2})
	e.SetRegister(chip8.V0, 1)
	e.SetRegister(chip8.V1, 2)
	e.SetRegister(chip8.V2, 3)
	e.SetRegister(chip8.V3, 0xAA)
	e.SetIndex(0x300)

	step(e)

	assert.Equal(t, chip8.Datum(1), e.Memory().Read(0x300))
	assert.Equal(t, chip8.Datum(2), e.Memory().Read(0x301))
	assert.Equal(t, chip8.Datum(3), e.Memory().Read(0x302))
	// V3 is beyond the inclusive bound and must not be written
	assert.Equal(t, chip8.Datum(0), e.Memory().Read(0x303))
}

func TestReadMultipleInclusive(t *testing.T) {
	e := newTestEngine(t, chip8.Instruction{Op: chip8.ReadMultiple, X: chip8.V1})
	e.Memory().Write(0x400, 0x11)
	e.Memory().Write(0x401, 0x22)
	e.Memory().Write(0x402, 0x33)
	e.SetIndex(0x400)

	step(e)

	assert.Equal(t, chip8.Datum(0x11), e.Register(chip8.V0))
	assert.Equal(t, chip8.Datum(0x22), e.Register(chip8.V1))
	assert.Equal(t, chip8.Datum(0), e.Register(chip8.V2))
}

func TestBCDWritesDigits(t *testing.T) {
	e := newTestEngine(t, chip8.Instruction{Op: chip8.BCD, X: chip8.V0})
	e.SetRegister(chip8.V0, 254)
	e.SetIndex(0x500)

	step(e)

	assert.Equal(t, chip8.Datum(2), e.Memory().Read(0x500))
	assert.Equal(t, chip8.Datum(5), e.Memory().Read(0x501))
	assert.Equal(t, chip8.Datum(4), e.Memory().Read(0x502))
}

func TestDrawCollision(t *testing.T) {
	// draw the same one-byte sprite twice at the same coordinates
	e := newTestEngine(t,
		chip8.Instruction{Op: chip8.Draw, X: chip8.V0, Y: chip8.V1, N: 1},
		chip8.Instruction{Op: chip8.Draw, X: chip8.V0, Y: chip8.V1, N: 1},
	)
	e.Memory().Write(0x600, 0xFF)
	e.SetIndex(0x600)

	frame := step(e)
	assert.True(t, frame.ScreenModified())
	assert.Equal(t, chip8.Datum(0), e.Register(chip8.VF))
	assert.True(t, e.Display().Pixel(0, 0))

	frame = step(e)
	assert.True(t, frame.ScreenModified())
	assert.Equal(t, chip8.Datum(1), e.Register(chip8.VF))
	// the second draw cleared every pixel the first one set
	for x := range 8 {
		assert.False(t, e.Display().Pixel(x, 0))
	}
}

func TestBusyWaitDetection(t *testing.T) {
	t.Run("self jump", func(t *testing.T) {
		e := newTestEngine(t, chip8.Instruction{Op: chip8.Jump, Addr: chip8.ProgramStart})

		frame := step(e)
		assert.True(t, frame.EnteredBusyWait())
		assert.Equal(t, chip8.ProgramStart, e.ProgramCounter())
	})

	t.Run("forward jump", func(t *testing.T) {
		e := newTestEngine(t, chip8.Instruction{Op: chip8.Jump, Addr: 0x300})

		frame := step(e)
		assert.False(t, frame.EnteredBusyWait())
		assert.Equal(t, chip8.Address(0x300), e.ProgramCounter())
	})

	t.Run("relative self jump", func(t *testing.T) {
		e := newTestEngine(t, chip8.Instruction{Op: chip8.JumpV0, Addr: chip8.ProgramStart})
		e.SetRegister(chip8.V0, 0)

		frame := step(e)
		assert.True(t, frame.EnteredBusyWait())
	})
}

func TestWaitForKeySignalsFrame(t *testing.T) {
	e := newTestEngine(t, chip8.Instruction{Op: chip8.WaitForKey, X: chip8.V3})

	frame := step(e)
	reg, ok := frame.WaitForKey()
	assert.True(t, ok)
	assert.Equal(t, chip8.V3, reg)
}

func TestSkipOnKeys(t *testing.T) {
	e := newTestEngine(t,
		chip8.Instruction{Op: chip8.SkipPressed, X: chip8.V0},
	)
	e.SetRegister(chip8.V0, 0x5)

	frame := &control.FrameInfo{}
	e.Step(chip8.KeyFromDatum(0x5), frame)

	// skip advances over the following instruction
	assert.Equal(t, chip8.ProgramStart+4, e.ProgramCounter())
}

func TestCallAndReturn(t *testing.T) {
	e := newTestEngine(t, chip8.Instruction{Op: chip8.Call, Addr: 0x400})

	step(e)
	assert.Equal(t, chip8.Address(0x400), e.ProgramCounter())
	assert.Len(t, e.Stack(), 1)

	raw := chip8.Encode(chip8.Instruction{Op: chip8.Return})
	e.Memory().Write(0x400, raw.First())
	e.Memory().Write(0x401, raw.Second())

	step(e)
	assert.Equal(t, chip8.ProgramStart+2, e.ProgramCounter())
	assert.Len(t, e.Stack(), 0)
}

func TestStackOverflowPanics(t *testing.T) {
	e := newTestEngine(t)
	for range stackDepth {
		e.stackPush(0x200)
	}

	defer func() {
		assert.NotNil(t, recover(), "17th push must panic")
	}()
	e.stackPush(0x200)
}

func TestStackUnderflowPanics(t *testing.T) {
	e := newTestEngine(t)

	defer func() {
		assert.NotNil(t, recover(), "pop on empty stack must panic")
	}()
	e.stackPop()
}

func TestRandomUsesMask(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	e := newTestEngine(t, chip8.Instruction{Op: chip8.Random, X: chip8.V0, Byte: 0x0F})
	e.rng = rng

	step(e)

	// the mask limits the result to the low nibble
	assert.True(t, e.Register(chip8.V0) <= 0x0F)
}

func TestSpriteAddressUsesFontTable(t *testing.T) {
	e := newTestEngine(t, chip8.Instruction{Op: chip8.SpriteAddress, X: chip8.V0})
	e.SetRegister(chip8.V0, 0xA)

	step(e)

	assert.Equal(t, uint16(chip8.FontStart)+0xA*memory.GlyphSize, e.Index())
}

func TestGetSetTimers(t *testing.T) {
	e := newTestEngine(t,
		chip8.Instruction{Op: chip8.SetDelayTimer, X: chip8.V0},
		chip8.Instruction{Op: chip8.SetSoundTimer, X: chip8.V0},
		chip8.Instruction{Op: chip8.GetDelayTimer, X: chip8.V1},
	)
	e.SetRegister(chip8.V0, 42)

	step(e)
	step(e)
	step(e)

	assert.Equal(t, chip8.Datum(42), *e.DelayTimer())
	assert.Equal(t, chip8.Datum(42), *e.SoundTimer())
	assert.Equal(t, chip8.Datum(42), e.Register(chip8.V1))
}

func TestProgramCounterWraparound(t *testing.T) {
	e := newTestEngine(t)
	e.SetProgramCounter(chip8.MaxAddress)

	// the first fetch wraps to zero, the second advances to one
	step(e)
	assert.Equal(t, chip8.Address(1), e.ProgramCounter())
}

func TestUndefinedOpcodePanics(t *testing.T) {
	rom, err := memory.NewROM([]byte{0x01, 0x23})
	assert.NoError(t, err)
	e := NewFromROM(log.NewTestLogger(t), rom)

	defer func() {
		assert.NotNil(t, recover(), "undefined opcode must be fatal")
	}()
	step(e)
}

func TestAddIndex(t *testing.T) {
	e := newTestEngine(t, chip8.Instruction{Op: chip8.AddIndex, X: chip8.V0})
	e.SetRegister(chip8.V0, 0x10)
	e.SetIndex(0xFFFF)

	step(e)

	// index addition wraps on 16 bits
	assert.Equal(t, uint16(0x000F), e.Index())
}
