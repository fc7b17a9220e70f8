// Package driver connects the interpreter to a host: rendering frames,
// sampling the keypad and signalling the buzzer.
package driver

import (
	"context"
	"time"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/control"
	"github.com/retroenv/chip8emu/internal/display"
)

// Driver is the host boundary of the interpreter.
type Driver interface {
	// Render shows a new frame.
	Render(frame *display.Frame)
	// Buzzer signals the buzzer state.
	Buzzer(active bool)
	// Keys samples the currently pressed keys.
	Keys() chip8.Keys
	// Done is closed when the host wants to quit. A nil channel never fires.
	Done() <-chan struct{}
	// Close releases host resources.
	Close()
}

// Run steps the runtime against the driver until the context is cancelled,
// the driver quits or maxSteps steps ran. A maxSteps of 0 runs unlimited.
func Run(ctx context.Context, runtime *control.Runtime, drv Driver, maxSteps uint) error {
	ticker := time.NewTicker(runtime.StepDuration())
	defer ticker.Stop()

	var steps uint
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-drv.Done():
			return nil

		case <-ticker.C:
			frame := runtime.Step(drv.Keys())
			drv.Buzzer(runtime.BuzzerActive())
			if frame != nil {
				drv.Render(frame)
			}

			steps++
			if maxSteps > 0 && steps >= maxSteps {
				return nil
			}
		}
	}
}
