package driver

import (
	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/display"
)

// Compile-time check to ensure Headless implements Driver.
var _ Driver = (*Headless)(nil)

// Headless is a driver without a host surface, used for fixed-step runs and
// recordings. No keys are ever pressed.
type Headless struct {
	frames    uint
	lastFrame *display.Frame
}

// NewHeadless creates a headless driver.
func NewHeadless() *Headless {
	return &Headless{}
}

// Render implements Driver.
func (h *Headless) Render(frame *display.Frame) {
	h.frames++
	h.lastFrame = frame
}

// Buzzer implements Driver.
func (h *Headless) Buzzer(bool) {}

// Keys implements Driver.
func (h *Headless) Keys() chip8.Keys {
	return 0
}

// Done implements Driver.
func (h *Headless) Done() <-chan struct{} {
	return nil
}

// Close implements Driver.
func (h *Headless) Close() {}

// Frames returns the number of rendered frames.
func (h *Headless) Frames() uint {
	return h.frames
}

// LastFrame returns the most recently rendered frame, nil if the screen was
// never touched.
func (h *Headless) LastFrame() *display.Frame {
	return h.lastFrame
}
