package control

import "github.com/retroenv/chip8emu/internal/chip8"

// FrameInfo is the per-step scratch record the engine reports side effects
// through. It is created empty at the start of each step, consumed by the
// wrapper at the end of the same step and then discarded.
type FrameInfo struct {
	screenModified  bool
	enteredBusyWait bool

	buzzerChanged bool
	buzzerState   bool

	waitingForKey bool
	waitRegister  chip8.GeneralRegister
}

// ModifyScreen marks the screen as touched by this step.
func (f *FrameInfo) ModifyScreen() {
	f.screenModified = true
}

// ScreenModified reports whether the screen was touched by this step.
func (f *FrameInfo) ScreenModified() bool {
	return f.screenModified
}

// SetBuzzer records a new buzzer state for this step.
func (f *FrameInfo) SetBuzzer(active bool) {
	f.buzzerChanged = true
	f.buzzerState = active
}

// BuzzerChange returns the new buzzer state and whether it changed.
func (f *FrameInfo) BuzzerChange() (bool, bool) {
	return f.buzzerState, f.buzzerChanged
}

// BusyWait marks that the engine detected a self-jump and entered busy-wait.
func (f *FrameInfo) BusyWait() {
	f.enteredBusyWait = true
}

// EnteredBusyWait reports whether the engine entered busy-wait in this step.
func (f *FrameInfo) EnteredBusyWait() bool {
	return f.enteredBusyWait
}

// WaitForKeyOn records that the engine requested to block until a key press
// is stored in the given register.
func (f *FrameInfo) WaitForKeyOn(reg chip8.GeneralRegister) {
	f.waitingForKey = true
	f.waitRegister = reg
}

// WaitForKey returns the key-wait target register and whether a key wait was
// requested.
func (f *FrameInfo) WaitForKey() (chip8.GeneralRegister, bool) {
	return f.waitRegister, f.waitingForKey
}
