// Package hooks provides concrete observers for the interpreter hook chain:
// an execution dumper for per-step traces and a frame recorder.
package hooks

import (
	"fmt"
	"io"

	"github.com/k0kubun/pp/v3"
	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/control"
)

// Compile-time check to ensure Dumper implements control.Hook.
var _ control.Hook = (*Dumper)(nil)

// Dumper traces execution: one line per step with the program counter and
// the decoded instruction, plus an optional register dump. It can also mask
// all key input to keep traced runs deterministic.
type Dumper struct {
	control.NopHook

	out           io.Writer
	printer       *pp.PrettyPrinter
	stepNumber    uint64
	dumpRegisters bool
	maskKeys      bool
}

// DumperOption configures a Dumper.
type DumperOption func(*Dumper)

// WithRegisterDump enables a register snapshot after every step.
func WithRegisterDump() DumperOption {
	return func(d *Dumper) {
		d.dumpRegisters = true
	}
}

// WithKeyMasking makes the dumper report all keys as released to later hooks
// and the engine, stopping the key-mapping chain.
func WithKeyMasking() DumperOption {
	return func(d *Dumper) {
		d.maskKeys = true
	}
}

// NewDumper returns a dumper writing its trace to out.
func NewDumper(out io.Writer, options ...DumperOption) *Dumper {
	printer := pp.New()
	printer.SetOutput(out)
	printer.SetColoringEnabled(false)

	d := &Dumper{
		out:     out,
		printer: printer,
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

// MapKeys implements control.Hook.
func (d *Dumper) MapKeys(_ control.Status, _ control.Interpreter, keys chip8.Keys) control.KeyResult {
	if d.maskKeys {
		return control.FinishKeys(0)
	}
	return control.IgnoreKeys()
}

// BeforeStep implements control.Hook. It logs the instruction about to be
// executed without advancing the engine.
func (d *Dumper) BeforeStep(in control.Interpreter, _ *control.FrameInfo) {
	pc := in.ProgramCounter()
	raw := chip8.RawFromBytes(in.Memory().Read(pc), in.Memory().Read(pc+1))

	ins, err := chip8.Decode(raw)
	if err != nil {
		fmt.Fprintf(d.out, "step %d  %s  $%04X  <undefined>\n", d.stepNumber, pc, uint16(raw))
		return
	}
	fmt.Fprintf(d.out, "step %d  %s  $%04X  %s\n", d.stepNumber, pc, uint16(raw), ins.Op.Name())
}

// registerSnapshot is the per-step state the register dump shows.
type registerSnapshot struct {
	PC    chip8.Address
	I     uint16
	V     [chip8.NumRegisters]chip8.Datum
	Delay chip8.Datum
	Sound chip8.Datum
}

// AfterStep implements control.Hook.
func (d *Dumper) AfterStep(in control.Interpreter, _ *control.FrameInfo) {
	if !d.dumpRegisters {
		return
	}

	snapshot := registerSnapshot{
		PC:    in.ProgramCounter(),
		I:     in.Index(),
		Delay: *in.DelayTimer(),
		Sound: *in.SoundTimer(),
	}
	for i := range chip8.NumRegisters {
		snapshot.V[i] = in.Register(chip8.GeneralRegister(i))
	}
	d.printer.Println(snapshot)
}

// PostCycle implements control.Hook.
func (d *Dumper) PostCycle(*control.Status) {
	d.stepNumber++
}
