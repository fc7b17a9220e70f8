// Package engine implements the CHIP-8 execution engine: the
// fetch-decode-execute cycle over the engine-owned registers, stack, memory
// and display.
package engine

import (
	"math/rand/v2"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/control"
	"github.com/retroenv/chip8emu/internal/display"
	"github.com/retroenv/chip8emu/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

// stackDepth is the maximum call depth; exceeding it indicates a malformed
// program.
const stackDepth = 16

// Compile-time check to ensure Engine implements control.Interpreter.
var _ control.Interpreter = (*Engine)(nil)

// Engine owns the full machine state and executes one instruction per step.
// The random source is engine-owned so tests can substitute a seeded one.
type Engine struct {
	programCounter chip8.Address
	memory         *memory.Memory
	display        *display.Display
	registers      [chip8.NumRegisters]chip8.Datum
	index          uint16
	stack          []chip8.Address

	delayTimer chip8.Datum
	soundTimer chip8.Datum

	rng    *rand.Rand
	logger *log.Logger
}

// Option configures an engine.
type Option func(*Engine)

// WithRandom sets the random source for the random-byte instruction.
func WithRandom(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// New returns an engine with empty memory apart from the font table.
func New(logger *log.Logger, options ...Option) *Engine {
	e := &Engine{
		programCounter: chip8.ProgramStart,
		memory:         memory.New(),
		display:        display.New(),
		stack:          make([]chip8.Address, 0, stackDepth),
		logger:         logger,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return e
}

// NewFromROM returns an engine with the program image loaded at the program
// start address.
func NewFromROM(logger *log.Logger, rom *memory.ROM, options ...Option) *Engine {
	e := New(logger, options...)
	e.memory = rom.Memory()
	return e
}

// NewFromMemory returns an engine executing a prepared memory image.
func NewFromMemory(logger *log.Logger, mem *memory.Memory, options ...Option) *Engine {
	e := New(logger, options...)
	e.memory = mem
	return e
}

// Display returns the engine-owned pixel grid.
func (e *Engine) Display() *display.Display {
	return e.display
}

// Register returns the value of a general register.
func (e *Engine) Register(reg chip8.GeneralRegister) chip8.Datum {
	return e.registers[reg.Index()]
}

// SetRegister overwrites a general register.
func (e *Engine) SetRegister(reg chip8.GeneralRegister, value chip8.Datum) {
	e.registers[reg.Index()] = value
}

// Index returns the 16-bit index register.
func (e *Engine) Index() uint16 {
	return e.index
}

// SetIndex overwrites the 16-bit index register.
func (e *Engine) SetIndex(value uint16) {
	e.index = value
}

// Stack returns the call stack, top last.
func (e *Engine) Stack() []chip8.Address {
	return e.stack
}

// Memory returns the engine-owned address space.
func (e *Engine) Memory() *memory.Memory {
	return e.memory
}

// ProgramCounter returns the current program counter.
func (e *Engine) ProgramCounter() chip8.Address {
	return e.programCounter
}

// SetProgramCounter overwrites the program counter.
func (e *Engine) SetProgramCounter(addr chip8.Address) {
	e.programCounter = addr
}

// DelayTimer returns the delay timer register.
func (e *Engine) DelayTimer() *chip8.Datum {
	return &e.delayTimer
}

// SoundTimer returns the sound timer register.
func (e *Engine) SoundTimer() *chip8.Datum {
	return &e.soundTimer
}

// stackPush pushes a return address. Call depth beyond the stack limit is a
// fatal condition.
func (e *Engine) stackPush(addr chip8.Address) {
	if len(e.stack) >= stackDepth {
		panic("stack overflow")
	}
	e.stack = append(e.stack, addr)
}

// stackPop pops the top return address. Returning with an empty stack is a
// fatal condition.
func (e *Engine) stackPop() chip8.Address {
	if len(e.stack) == 0 {
		panic("stack underflow")
	}
	top := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	return top
}

// setFlag writes the flag register VF.
func (e *Engine) setFlag(set bool) {
	var value chip8.Datum
	if set {
		value = 1
	}
	e.SetRegister(chip8.VF, value)
}
