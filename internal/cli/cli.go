// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/chip8emu/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}
	opts.Input = args[0]

	if err := validateOptionCombinations(opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8emu [options] <ROM or source file>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after the input file, please pass the input file as last argument", arg),
			}
		}
	}
	return nil
}

// validateOptionCombinations rejects option combinations that make no sense
func validateOptionCombinations(opts options.Program) error {
	if opts.Assemble && opts.Disassemble {
		return fmt.Errorf("the assemble and disassemble modes are mutually exclusive")
	}
	if (opts.Assemble || opts.Disassemble) && opts.Headless > 0 {
		return fmt.Errorf("headless runs only apply to the run mode")
	}
	if opts.Verify && !opts.Disassemble {
		return fmt.Errorf("verification applies to the disassemble mode only")
	}
	if opts.Frequency == 0 {
		return fmt.Errorf("the frequency must be positive")
	}
	if opts.FrequencyScale < 0 {
		return fmt.Errorf("the frequency scale must not be negative")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the output file for the assemble and disassemble modes, printed on console if no name given")
	flags.BoolVar(&opts.Assemble, "asm", false, "assemble the input source file into a ROM image")
	flags.BoolVar(&opts.Disassemble, "disasm", false, "disassemble the input ROM file into an assembly listing")
	flags.BoolVar(&opts.Verify, "verify", false, "verify the generated listing by reassembling and comparing it to the input")
	flags.UintVar(&opts.Frequency, "freq", options.DefaultFrequency, "interpreter steps per second")
	flags.Float64Var(&opts.FrequencyScale, "scale", 0, "scale simulated time against host time, 0 keeps them equal")
	flags.UintVar(&opts.Headless, "steps", 0, "run the given number of steps without a terminal and exit")
	flags.StringVar(&opts.DumpFile, "dump", "", "write an execution trace to the given file")
	flags.StringVar(&opts.RecordFile, "record", "", "write frame records to the given file")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
