package engine

import (
	"fmt"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/control"
	"github.com/retroenv/chip8emu/internal/display"
	"github.com/retroenv/chip8emu/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

// Step fetches, decodes and executes one instruction. A decode failure here
// is fatal: only previously validated ROMs reach this path, so an undefined
// opcode indicates a malformed program.
func (e *Engine) Step(keys chip8.Keys, frame *control.FrameInfo) {
	first := e.fetch()
	second := e.fetch()
	raw := chip8.RawFromBytes(first, second)

	ins, err := chip8.Decode(raw)
	if err != nil {
		panic(fmt.Sprintf("fetched undefined instruction: %v", err))
	}

	e.execute(ins, keys, frame)
}

// fetch reads the byte at the program counter and advances it. Running past
// the address ceiling wraps to zero; this is recoverable and only logged,
// unlike the fatal Address increment on exact-max used elsewhere.
func (e *Engine) fetch() chip8.Datum {
	value := e.memory.Read(e.programCounter)
	if e.programCounter == chip8.MaxAddress {
		e.logger.Warn("program counter overflow, wrapping to zero")
		e.programCounter = 0
	} else {
		e.programCounter.Increment()
	}
	return value
}

// skipInstruction advances the program counter over the next instruction.
func (e *Engine) skipInstruction() {
	e.programCounter.Increment()
	e.programCounter.Increment()
}

// jumpTo retargets the program counter. A jump that targets its own address
// signals busy-wait entry through the frame instead of spinning the host
// loop; only literal self-jumps are caught.
func (e *Engine) jumpTo(target chip8.Address, frame *control.FrameInfo) {
	if target+2 == e.programCounter {
		e.logger.Warn("entering busywait loop", log.Stringer("address", target))
		frame.BusyWait()
	}
	e.programCounter = target
}

// execute applies one decoded instruction to the machine state.
func (e *Engine) execute(ins chip8.Instruction, keys chip8.Keys, frame *control.FrameInfo) {
	switch ins.Op {
	case chip8.Nop:

	case chip8.ClearScreen:
		e.display.Clear()
		frame.ModifyScreen()

	case chip8.Return:
		e.programCounter = e.stackPop()

	case chip8.Jump:
		e.jumpTo(ins.Addr, frame)

	case chip8.Call:
		e.stackPush(e.programCounter)
		e.programCounter = ins.Addr

	case chip8.SkipEqual:
		if e.Register(ins.X) == ins.Byte {
			e.skipInstruction()
		}

	case chip8.SkipNotEqual:
		if e.Register(ins.X) != ins.Byte {
			e.skipInstruction()
		}

	case chip8.SkipRegistersEqual:
		if e.Register(ins.X) == e.Register(ins.Y) {
			e.skipInstruction()
		}

	case chip8.LoadByte:
		e.SetRegister(ins.X, ins.Byte)

	case chip8.AddByte:
		e.SetRegister(ins.X, e.Register(ins.X)+ins.Byte)

	case chip8.CopyRegister:
		e.SetRegister(ins.X, e.Register(ins.Y))

	case chip8.Or:
		e.SetRegister(ins.X, e.Register(ins.X)|e.Register(ins.Y))

	case chip8.And:
		e.SetRegister(ins.X, e.Register(ins.X)&e.Register(ins.Y))

	case chip8.Xor:
		e.SetRegister(ins.X, e.Register(ins.X)^e.Register(ins.Y))

	case chip8.AddRegister:
		sum := uint16(e.Register(ins.X)) + uint16(e.Register(ins.Y))
		e.setFlag(sum > 0xFF)
		e.SetRegister(ins.X, chip8.Datum(sum))

	case chip8.Sub:
		// VF holds Vx > Vy, not the arithmetic borrow bit.
		x, y := e.Register(ins.X), e.Register(ins.Y)
		e.setFlag(x > y)
		e.SetRegister(ins.X, x-y)

	case chip8.ShiftRight:
		value := e.Register(ins.X)
		e.setFlag(value&0x01 != 0)
		e.SetRegister(ins.X, value>>1)

	case chip8.SubN:
		x, y := e.Register(ins.X), e.Register(ins.Y)
		e.setFlag(y > x)
		e.SetRegister(ins.X, y-x)

	case chip8.ShiftLeft:
		value := e.Register(ins.X)
		e.setFlag(value&0x80 != 0)
		e.SetRegister(ins.X, value<<1)

	case chip8.SkipRegistersNotEqual:
		if e.Register(ins.X) != e.Register(ins.Y) {
			e.skipInstruction()
		}

	case chip8.LoadIndex:
		e.index = uint16(ins.Addr)

	case chip8.JumpV0:
		target := uint16(e.Register(chip8.V0)) + uint16(ins.Addr)
		if target&0xF000 != 0 {
			panic(fmt.Sprintf("relative jump target $%X out of bounds", target))
		}
		e.jumpTo(chip8.Address(target), frame)

	case chip8.Random:
		value := chip8.Datum(e.rng.UintN(256)) & ins.Byte
		e.SetRegister(ins.X, value)

	case chip8.Draw:
		addr := chip8.AddressFromWord(e.index)
		rows := e.memory.Substring(addr, ins.N)
		mod := e.display.Sprite(e.Register(ins.X), e.Register(ins.Y), rows)
		e.setFlag(mod == display.Clears)
		frame.ModifyScreen()

	case chip8.SkipPressed:
		key := chip8.KeyFromDatum(e.Register(ins.X))
		if (keys & key).Pressed() {
			e.skipInstruction()
		}

	case chip8.SkipNotPressed:
		key := chip8.KeyFromDatum(e.Register(ins.X))
		if !(keys & key).Pressed() {
			e.skipInstruction()
		}

	case chip8.GetDelayTimer:
		e.SetRegister(ins.X, e.delayTimer)

	case chip8.WaitForKey:
		frame.WaitForKeyOn(ins.X)

	case chip8.SetDelayTimer:
		e.delayTimer = e.Register(ins.X)

	case chip8.SetSoundTimer:
		e.soundTimer = e.Register(ins.X)

	case chip8.AddIndex:
		e.index += uint16(e.Register(ins.X))

	case chip8.SpriteAddress:
		digit := e.Register(ins.X)
		if digit >= 16 {
			panic(fmt.Sprintf("sprite lookup for non-digit value $%02X", uint8(digit)))
		}
		e.index = uint16(memory.GlyphAddress(digit))

	case chip8.BCD:
		value := uint8(e.Register(ins.X))
		addr := chip8.AddressFromWord(e.index)
		e.memory.Write(addr, chip8.Datum(value/100%10))
		e.memory.Write(addr+1, chip8.Datum(value/10%10))
		e.memory.Write(addr+2, chip8.Datum(value%10))

	case chip8.WriteMultiple:
		// V0..=Vx inclusive
		for i := 0; i <= ins.X.Index(); i++ {
			addr := chip8.AddressFromWord(e.index + uint16(i))
			e.memory.Write(addr, e.registers[i])
		}

	case chip8.ReadMultiple:
		for i := 0; i <= ins.X.Index(); i++ {
			addr := chip8.AddressFromWord(e.index + uint16(i))
			e.registers[i] = e.memory.Read(addr)
		}

	default:
		panic(fmt.Sprintf("execute: unhandled operation %d", ins.Op))
	}
}
