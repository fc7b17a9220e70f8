// Package app provides the main application helper for the emulator.
package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/chip8emu/internal/assembler"
	"github.com/retroenv/chip8emu/internal/control"
	"github.com/retroenv/chip8emu/internal/disasm"
	"github.com/retroenv/chip8emu/internal/driver"
	"github.com/retroenv/chip8emu/internal/engine"
	"github.com/retroenv/chip8emu/internal/hooks"
	"github.com/retroenv/chip8emu/internal/loader"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/chip8emu/internal/verification"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("chip8emu", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// Run dispatches to the selected mode.
func Run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	switch {
	case opts.Assemble:
		return assembleFile(logger, opts)
	case opts.Disassemble:
		return disassembleFile(logger, opts)
	default:
		return runROM(ctx, logger, opts)
	}
}

// assembleFile translates an assembly source file into a ROM image.
func assembleFile(logger *log.Logger, opts options.Program) error {
	source, err := loader.New().LoadSource(opts.Input)
	if err != nil {
		return err
	}

	program, err := assembler.AssembleBytes(source)
	if err != nil {
		return fmt.Errorf("assembling %s: %w", opts.Input, err)
	}

	output, err := openOutput(opts.Output)
	if err != nil {
		return err
	}
	defer func() { _ = output.Close() }()

	if _, err := output.Write(program); err != nil {
		return fmt.Errorf("writing ROM: %w", err)
	}

	logger.Info("Assembled",
		log.String("file", opts.Input),
		log.Int("bytes", len(program)))
	return nil
}

// disassembleFile renders a ROM image as an assembly listing.
func disassembleFile(logger *log.Logger, opts options.Program) error {
	rom, err := loader.New().Load(opts.Input)
	if err != nil {
		return err
	}

	var listing bytes.Buffer
	if err := disasm.New(logger, rom).Process(&listing); err != nil {
		return fmt.Errorf("disassembling %s: %w", opts.Input, err)
	}

	if opts.Verify {
		if err := verification.VerifyListing(logger, rom, listing.String()); err != nil {
			return fmt.Errorf("verifying listing: %w", err)
		}
		if !opts.Quiet {
			logger.Info("Verification successful")
		}
	}

	output, err := openOutput(opts.Output)
	if err != nil {
		return err
	}
	defer func() { _ = output.Close() }()

	if _, err := output.Write(listing.Bytes()); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// runROM loads a ROM and runs it against a host driver.
func runROM(ctx context.Context, logger *log.Logger, opts options.Program) error {
	rom, err := loader.New().Load(opts.Input)
	if err != nil {
		return err
	}

	if !opts.Quiet {
		logger.Info("Running ROM",
			log.String("file", opts.Input),
			log.Int("frequency", int(opts.Frequency)))
	}

	observers, closeObservers, err := createHooks(opts)
	if err != nil {
		return err
	}
	defer closeObservers()

	eng := engine.NewFromROM(logger, rom)
	runtime := control.NewRuntime(eng, logger,
		control.WithFrequency(uint32(opts.Frequency)),
		control.WithFrequencyScale(opts.FrequencyScale),
		control.WithHooks(observers...))

	var drv driver.Driver
	if opts.Headless > 0 {
		drv = driver.NewHeadless()
	} else {
		drv, err = driver.NewTerminal(logger)
		if err != nil {
			return err
		}
	}
	defer drv.Close()

	return driver.Run(ctx, runtime, drv, opts.Headless)
}

// createHooks wires the optional trace and recording observers.
func createHooks(opts options.Program) ([]control.Hook, func(), error) {
	var observers []control.Hook
	var files []io.Closer
	closeFiles := func() {
		for _, file := range files {
			_ = file.Close()
		}
	}

	if opts.DumpFile != "" {
		file, err := os.Create(opts.DumpFile)
		if err != nil {
			return nil, closeFiles, fmt.Errorf("creating dump file: %w", err)
		}
		files = append(files, file)
		observers = append(observers, hooks.NewDumper(file, hooks.WithRegisterDump()))
	}

	if opts.RecordFile != "" {
		file, err := os.Create(opts.RecordFile)
		if err != nil {
			closeFiles()
			return nil, func() {}, fmt.Errorf("creating record file: %w", err)
		}
		files = append(files, file)
		observers = append(observers, hooks.NewRecorder(file))
	}

	return observers, closeFiles, nil
}

// openOutput opens the output file, or stdout if no name was given.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return &nopCloser{Writer: os.Stdout}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", path, err)
	}
	return file, nil
}

// nopCloser wraps an io.Writer to add a no-op Close method
type nopCloser struct {
	io.Writer
}

func (nc *nopCloser) Close() error {
	return nil
}
