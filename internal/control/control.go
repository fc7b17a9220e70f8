// Package control defines the capability surface of an execution engine and
// the timer and state-machine wrapper driving it. The wrapper is generic over
// the Interpreter interface, alternative instruction set implementations can
// be substituted without touching it.
package control

import (
	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/display"
	"github.com/retroenv/chip8emu/internal/memory"
)

// Interpreter is the capability set an execution engine exposes to the
// wrapper and to hooks.
type Interpreter interface {
	// Step fetches, decodes and executes one instruction, recording side
	// effects into frame.
	Step(keys chip8.Keys, frame *FrameInfo)

	// Display returns the engine-owned pixel grid.
	Display() *display.Display

	// Register returns the value of a general register.
	Register(reg chip8.GeneralRegister) chip8.Datum
	// SetRegister overwrites a general register.
	SetRegister(reg chip8.GeneralRegister, value chip8.Datum)

	// Index returns the 16-bit index register.
	Index() uint16
	// SetIndex overwrites the 16-bit index register.
	SetIndex(value uint16)

	// Stack returns the call stack, top last.
	Stack() []chip8.Address

	// Memory returns the engine-owned address space.
	Memory() *memory.Memory

	// ProgramCounter returns the current program counter.
	ProgramCounter() chip8.Address
	// SetProgramCounter overwrites the program counter.
	SetProgramCounter(addr chip8.Address)

	// DelayTimer returns the delay timer register for 60 Hz decrements.
	DelayTimer() *chip8.Datum
	// SoundTimer returns the sound timer register for 60 Hz decrements.
	SoundTimer() *chip8.Datum
}

// TimerTick records which timers moved during one 60 Hz tick.
type TimerTick struct {
	delay bool
	sound bool
}

// Delay records whether the delay timer decremented.
func (t *TimerTick) Delay(decremented bool) {
	if decremented {
		t.delay = true
	}
}

// Sound records whether the sound timer decremented.
func (t *TimerTick) Sound(decremented bool) {
	if decremented {
		t.sound = true
	}
}

// BuzzerActive reports whether the buzzer should sound for this tick.
func (t TimerTick) BuzzerActive() bool {
	return t.sound
}

// tickTimers applies one 60 Hz decrement to both timers of an interpreter.
func tickTimers(in Interpreter) TimerTick {
	var tick TimerTick
	tick.Delay(in.DelayTimer().TowardsZero())
	tick.Sound(in.SoundTimer().TowardsZero())
	return tick
}
