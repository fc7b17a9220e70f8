package control

import "github.com/retroenv/chip8emu/internal/chip8"

// Hook observes the step cycle at five extension points without being part
// of the engine. Hooks run in registration order and receive borrowed access
// to the engine only for the duration of the callback.
type Hook interface {
	// PreCycle runs before key mapping and state dispatch.
	PreCycle(status *Status)
	// MapKeys may replace the key input and stop the chain for later hooks.
	MapKeys(status Status, in Interpreter, keys chip8.Keys) KeyResult
	// BeforeStep runs directly before the engine executes an instruction.
	BeforeStep(in Interpreter, frame *FrameInfo)
	// AfterStep runs directly after the engine executed an instruction.
	AfterStep(in Interpreter, frame *FrameInfo)
	// PostCycle runs after the wrapper resolved all state transitions.
	PostCycle(status *Status)
}

// KeyResult is the outcome of one key-mapping hook invocation.
type KeyResult struct {
	keys    chip8.Keys
	replace bool
	stop    bool
}

// PassKeys replaces the key input and lets later hooks run.
func PassKeys(keys chip8.Keys) KeyResult {
	return KeyResult{keys: keys, replace: true}
}

// FinishKeys replaces the key input and stops the chain, the first hook that
// stops wins.
func FinishKeys(keys chip8.Keys) KeyResult {
	return KeyResult{keys: keys, replace: true, stop: true}
}

// IgnoreKeys leaves the key input untouched.
func IgnoreKeys() KeyResult {
	return KeyResult{}
}

// NopHook implements every extension point as a no-op, concrete hooks embed
// it and override the points they use.
type NopHook struct{}

// Compile-time check to ensure NopHook implements Hook.
var _ Hook = (*NopHook)(nil)

// PreCycle implements Hook.
func (NopHook) PreCycle(*Status) {}

// MapKeys implements Hook.
func (NopHook) MapKeys(Status, Interpreter, chip8.Keys) KeyResult {
	return IgnoreKeys()
}

// BeforeStep implements Hook.
func (NopHook) BeforeStep(Interpreter, *FrameInfo) {}

// AfterStep implements Hook.
func (NopHook) AfterStep(Interpreter, *FrameInfo) {}

// PostCycle implements Hook.
func (NopHook) PostCycle(*Status) {}
