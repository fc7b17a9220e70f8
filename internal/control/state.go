package control

import "github.com/retroenv/chip8emu/internal/chip8"

// State is the interpreter control state.
type State uint8

// Control states of the interpreter.
const (
	// Normal executes one instruction per step.
	Normal State = iota
	// Held is reserved for an externally paused interpreter and is never
	// entered by the wrapper itself.
	Held
	// WaitForKey blocks stepping until a single unambiguous key press is
	// observed, which is then stored in the wait register.
	WaitForKey
	// BusyWaiting is entered when a jump targets its own address. It is
	// terminal until released externally.
	BusyWaiting
)

func (s State) String() string {
	switch s {
	case Normal:
		return "normal"
	case Held:
		return "held"
	case WaitForKey:
		return "wait-for-key"
	case BusyWaiting:
		return "busy-waiting"
	}
	return "unknown"
}

// Status is the control state together with the key-wait target register.
// WaitRegister is meaningful only while State is WaitForKey.
type Status struct {
	State        State
	WaitRegister chip8.GeneralRegister
}
