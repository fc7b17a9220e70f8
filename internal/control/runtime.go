package control

import (
	"time"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/display"
	"github.com/retroenv/retrogolib/log"
)

// DefaultStepFrequency is the step frequency used when none is configured.
const DefaultStepFrequency = 8

// sixtieth is the period of one timer decrement.
const sixtieth = time.Second / 60

// Runtime wraps an execution engine, decrements the two timers at a fixed
// 60 Hz independent of the host step frequency and tracks the interpreter
// control state. The engine's internal state is exclusively owned by the
// runtime for the lifetime of a run.
type Runtime struct {
	inner  Interpreter
	logger *log.Logger

	buzzerActive   bool
	stepFrequency  uint32
	frequencyScale float64 // 0 means no scaling

	sixtyHertzProgress time.Duration
	status             Status

	hooks []Hook
}

// Option configures a runtime.
type Option func(*Runtime)

// WithFrequency sets the host step frequency in steps per second.
func WithFrequency(frequency uint32) Option {
	return func(r *Runtime) {
		r.stepFrequency = frequency
	}
}

// WithFrequencyScale sets a frequency multiplier for slow motion or fast
// forward of emulated time.
func WithFrequencyScale(scale float64) Option {
	return func(r *Runtime) {
		r.frequencyScale = scale
	}
}

// WithHooks sets the hook chain. The set of hooks for a run is fixed at
// startup, there is no dynamic registration.
func WithHooks(hooks ...Hook) Option {
	return func(r *Runtime) {
		r.hooks = hooks
	}
}

// NewRuntime wraps the given engine.
func NewRuntime(inner Interpreter, logger *log.Logger, options ...Option) *Runtime {
	r := &Runtime{
		inner:         inner,
		logger:        logger,
		stepFrequency: DefaultStepFrequency,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// StepDuration returns the emulated time one host step represents.
func (r *Runtime) StepDuration() time.Duration {
	return time.Duration(float64(time.Second) / float64(r.stepFrequency))
}

// BuzzerActive reports whether the buzzer is currently sounding. The flag
// persists across steps and is queried independently of Step's return.
func (r *Runtime) BuzzerActive() bool {
	return r.buzzerActive
}

// Status returns the current control status.
func (r *Runtime) Status() Status {
	return r.status
}

// Interpreter returns the wrapped engine.
func (r *Runtime) Interpreter() Interpreter {
	return r.inner
}

// Release returns a busy-waiting or held interpreter to normal execution.
// This is the external reset path out of the otherwise terminal BusyWaiting
// state.
func (r *Runtime) Release() {
	if r.status.State == BusyWaiting || r.status.State == Held {
		r.logger.Info("releasing interpreter", log.Stringer("state", r.status.State))
		r.status = Status{State: Normal}
	}
}

// Step advances the machine by one host step. It returns the framebuffer if
// the display changed during the step, nil otherwise.
func (r *Runtime) Step(keys chip8.Keys) *display.Frame {
	r.hookPreCycle()
	keys = r.hookMapKeys(keys)

	switch r.status.State {
	case Normal:
	case Held:
		return nil
	case WaitForKey:
		if !keys.Pressed() {
			return nil
		}
		key, ok := keys.OneKey()
		if !ok {
			r.logger.Warn("multiple keys pressed at once, not continuing")
			return nil
		}
		r.logger.Info("key pressed, continuing",
			log.Stringer("register", r.status.WaitRegister))
		r.inner.SetRegister(r.status.WaitRegister, key)
		r.status = Status{State: Normal}
	case BusyWaiting:
		return nil
	}

	frame := &FrameInfo{}
	r.advanceTimers(frame)

	r.hookBeforeStep(frame)
	r.inner.Step(keys, frame)
	r.hookAfterStep(frame)

	if reg, ok := frame.WaitForKey(); ok {
		r.status = Status{State: WaitForKey, WaitRegister: reg}
		r.logger.Info("waiting to store next keypress", log.Stringer("register", reg))
	}
	if frame.EnteredBusyWait() {
		r.status = Status{State: BusyWaiting}
	}
	if buzzer, changed := frame.BuzzerChange(); changed {
		r.buzzerActive = buzzer
	}

	var out *display.Frame
	if frame.ScreenModified() {
		snapshot := r.inner.Display().Frame()
		out = &snapshot
	}
	r.hookPostCycle()
	return out
}

// advanceTimers accumulates the emulated time of one step and applies 60 Hz
// timer decrements for every sixtieth of a second that has elapsed. The
// accumulator keeps the average decrement rate correct for hosts stepping
// faster or slower than 60 Hz and under frequency scaling.
func (r *Runtime) advanceTimers(frame *FrameInfo) {
	scale := r.frequencyScale
	if scale == 0 {
		scale = 1
	}
	progress := time.Duration(float64(r.StepDuration()) * scale)
	r.sixtyHertzProgress += progress

	for r.sixtyHertzProgress >= sixtieth {
		r.sixtyHertzProgress -= sixtieth
		tick := tickTimers(r.inner)
		frame.SetBuzzer(tick.BuzzerActive())
	}
}

func (r *Runtime) hookPreCycle() {
	for _, hook := range r.hooks {
		hook.PreCycle(&r.status)
	}
}

func (r *Runtime) hookMapKeys(keys chip8.Keys) chip8.Keys {
	for _, hook := range r.hooks {
		result := hook.MapKeys(r.status, r.inner, keys)
		if result.replace {
			keys = result.keys
		}
		if result.stop {
			break
		}
	}
	return keys
}

func (r *Runtime) hookBeforeStep(frame *FrameInfo) {
	for _, hook := range r.hooks {
		hook.BeforeStep(r.inner, frame)
	}
}

func (r *Runtime) hookAfterStep(frame *FrameInfo) {
	for _, hook := range r.hooks {
		hook.AfterStep(r.inner, frame)
	}
}

func (r *Runtime) hookPostCycle() {
	for _, hook := range r.hooks {
		hook.PostCycle(&r.status)
	}
}
