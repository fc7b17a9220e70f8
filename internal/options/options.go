// Package options contains the program options.
package options

// DefaultFrequency is the default host step frequency in Hz.
const DefaultFrequency = 512

// Program options of the emulator.
type Program struct {
	Input  string // ROM file, or source file in assemble mode
	Output string // output file for the assemble and disassemble modes

	Assemble    bool // translate assembly source into a ROM image
	Disassemble bool // render a ROM image as an assembly listing
	Verify      bool // verify the listing by reassembling and comparing to the input

	Frequency      uint    // interpreter steps per second
	FrequencyScale float64 // scales simulated time against host time
	Headless       uint    // run the given number of steps without a terminal

	DumpFile   string // write an execution trace to this file
	RecordFile string // write frame records to this file

	Debug bool
	Quiet bool
}
