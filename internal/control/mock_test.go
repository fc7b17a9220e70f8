package control

import (
	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/display"
	"github.com/retroenv/chip8emu/internal/memory"
)

// Compile-time check to ensure the mock implements Interpreter.
var _ Interpreter = (*mockInterpreter)(nil)

// mockInterpreter implements Interpreter with a scriptable step function.
type mockInterpreter struct {
	display   *display.Display
	memory    *memory.Memory
	registers [chip8.NumRegisters]chip8.Datum
	index     uint16
	stack     []chip8.Address
	pc        chip8.Address

	delayTimer chip8.Datum
	soundTimer chip8.Datum

	steps  int
	stepFn func(m *mockInterpreter, keys chip8.Keys, frame *FrameInfo)
}

func newMockInterpreter(stepFn func(m *mockInterpreter, keys chip8.Keys, frame *FrameInfo)) *mockInterpreter {
	return &mockInterpreter{
		display: display.New(),
		memory:  memory.New(),
		pc:      chip8.ProgramStart,
		stepFn:  stepFn,
	}
}

func (m *mockInterpreter) Step(keys chip8.Keys, frame *FrameInfo) {
	m.steps++
	if m.stepFn != nil {
		m.stepFn(m, keys, frame)
	}
}

func (m *mockInterpreter) Display() *display.Display {
	return m.display
}

func (m *mockInterpreter) Register(reg chip8.GeneralRegister) chip8.Datum {
	return m.registers[reg.Index()]
}

func (m *mockInterpreter) SetRegister(reg chip8.GeneralRegister, value chip8.Datum) {
	m.registers[reg.Index()] = value
}

func (m *mockInterpreter) Index() uint16 {
	return m.index
}

func (m *mockInterpreter) SetIndex(value uint16) {
	m.index = value
}

func (m *mockInterpreter) Stack() []chip8.Address {
	return m.stack
}

func (m *mockInterpreter) Memory() *memory.Memory {
	return m.memory
}

func (m *mockInterpreter) ProgramCounter() chip8.Address {
	return m.pc
}

func (m *mockInterpreter) SetProgramCounter(addr chip8.Address) {
	m.pc = addr
}

func (m *mockInterpreter) DelayTimer() *chip8.Datum {
	return &m.delayTimer
}

func (m *mockInterpreter) SoundTimer() *chip8.Datum {
	return &m.soundTimer
}
