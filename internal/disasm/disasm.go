// Package disasm renders ROM images as assembly listings.
package disasm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

// Disasm turns a ROM image into an assembly listing. The listing uses the
// same dialect the assembler reads, so a listing can be assembled back into
// the bytes it came from.
type Disasm struct {
	logger *log.Logger
	rom    *memory.ROM

	lines  []line
	labels map[chip8.Address]string
}

// line is one word of the swept program, either a decoded instruction or a
// data word that no opcode matches.
type line struct {
	addr chip8.Address
	data []byte // set for undecodable or trailing bytes
	ins  chip8.Instruction
}

// New creates a disassembler for the ROM.
func New(logger *log.Logger, rom *memory.ROM) *Disasm {
	return &Disasm{
		logger: logger,
		rom:    rom,
		labels: map[chip8.Address]string{},
	}
}

// Process sweeps the program and writes the listing.
func (dis *Disasm) Process(writer io.Writer) error {
	program := trimPadding(dis.rom.Bytes())
	dis.logger.Debug("disassembling program", log.Int("bytes", len(program)))

	dis.sweep(program)
	dis.collectLabels()

	buffered := bufio.NewWriter(writer)
	for _, ln := range dis.lines {
		if err := dis.writeLine(buffered, ln); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}
	if err := buffered.Flush(); err != nil {
		return fmt.Errorf("flushing listing: %w", err)
	}
	return nil
}

// sweep decodes the program linearly, two bytes at a time. Words that do not
// decode are kept as data so the listing stays byte-exact.
func (dis *Disasm) sweep(program []byte) {
	for offset := 0; offset < len(program); offset += 2 {
		addr := chip8.ProgramStart + chip8.Address(offset)

		if offset+1 >= len(program) {
			dis.lines = append(dis.lines, line{addr: addr, data: program[offset:]})
			return
		}

		raw := chip8.RawFromBytes(chip8.Datum(program[offset]), chip8.Datum(program[offset+1]))
		ins, err := chip8.Decode(raw)
		if err != nil {
			dis.lines = append(dis.lines, line{addr: addr, data: program[offset : offset+2]})
			continue
		}
		dis.lines = append(dis.lines, line{addr: addr, ins: ins})
	}
}

// collectLabels names every address that a jump, call or index load targets,
// as long as the target lands on a swept line.
func (dis *Disasm) collectLabels() {
	starts := map[chip8.Address]bool{}
	for _, ln := range dis.lines {
		starts[ln.addr] = true
	}

	for _, ln := range dis.lines {
		if len(ln.data) > 0 {
			continue
		}
		switch ln.ins.Op {
		case chip8.Jump, chip8.Call, chip8.JumpV0, chip8.LoadIndex:
			if starts[ln.ins.Addr] {
				dis.labels[ln.ins.Addr] = fmt.Sprintf("l_%03x", uint16(ln.ins.Addr))
			}
		}
	}
}

func (dis *Disasm) writeLine(writer io.Writer, ln line) error {
	if label, ok := dis.labels[ln.addr]; ok {
		if _, err := fmt.Fprintf(writer, "%s:\n", label); err != nil {
			return err
		}
	}

	var text string
	var word uint16
	if len(ln.data) > 0 {
		text = formatData(ln.data)
		for _, b := range ln.data {
			word = word<<8 | uint16(b)
		}
	} else {
		text = dis.formatInstruction(ln.ins)
		word = uint16(chip8.Encode(ln.ins))
	}

	_, err := fmt.Fprintf(writer, "  %-24s ; %s  %04X\n", text, ln.addr, word)
	return err
}

func trimPadding(program []byte) []byte {
	end := len(program)
	for end > 0 && program[end-1] == 0 {
		end--
	}
	// keep word alignment so padding inside the program survives
	if end%2 == 1 {
		end++
	}
	if end == 0 {
		end = 2
	}
	return program[:end]
}
