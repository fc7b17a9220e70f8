package driver

import (
	"fmt"
	"sync"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/display"
	"github.com/retroenv/retrogolib/log"
)

// keyDecay releases a key this long after its last keydown event, terminals
// only report presses and never releases.
const keyDecay = 100 * time.Millisecond

// defaultKeyMap lays the 16-key pad onto the left side of a QWERTY keyboard.
var defaultKeyMap = map[rune]chip8.Datum{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Compile-time check to ensure Terminal implements Driver.
var _ Driver = (*Terminal)(nil)

// Terminal renders the framebuffer into a terminal using tcell, one pixel as
// a two-cell block. Escape and Ctrl-C quit.
type Terminal struct {
	logger *log.Logger
	screen tcell.Screen

	mu      sync.Mutex
	pressed map[chip8.Datum]time.Time

	done     chan struct{}
	quitOnce sync.Once

	buzzing bool
}

// NewTerminal creates a terminal driver on the current terminal.
func NewTerminal(logger *log.Logger) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating terminal screen: %w", err)
	}
	return newTerminal(logger, screen)
}

func newTerminal(logger *log.Logger, screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	t := &Terminal{
		logger:  logger,
		screen:  screen,
		pressed: map[chip8.Datum]time.Time{},
		done:    make(chan struct{}),
	}
	go t.eventLoop()
	return t, nil
}

// Render implements Driver.
func (t *Terminal) Render(frame *display.Frame) {
	on := tcell.StyleDefault.Reverse(true)
	off := tcell.StyleDefault

	for y := range display.Height {
		for x := range display.Width {
			style := off
			if frame[y][x] {
				style = on
			}
			t.screen.SetContent(x*2, y, ' ', nil, style)
			t.screen.SetContent(x*2+1, y, ' ', nil, style)
		}
	}
	t.drawStatus()
	t.screen.Show()
}

// Buzzer implements Driver.
func (t *Terminal) Buzzer(active bool) {
	if t.buzzing == active {
		return
	}
	t.buzzing = active
	t.drawStatus()
	t.screen.Show()
}

// Keys implements Driver. Keys seen longer than the decay window ago count
// as released.
func (t *Terminal) Keys() chip8.Keys {
	t.mu.Lock()
	defer t.mu.Unlock()

	var keys chip8.Keys
	now := time.Now()
	for key, last := range t.pressed {
		if now.Sub(last) > keyDecay {
			delete(t.pressed, key)
			continue
		}
		keys |= chip8.KeyFromDatum(key)
	}
	return keys
}

// Done implements Driver.
func (t *Terminal) Done() <-chan struct{} {
	return t.done
}

// Close implements Driver.
func (t *Terminal) Close() {
	t.quit()
	t.screen.Fini()
}

func (t *Terminal) quit() {
	t.quitOnce.Do(func() {
		close(t.done)
	})
}

func (t *Terminal) eventLoop() {
	for {
		event := t.screen.PollEvent()
		if event == nil { // screen was finalized
			return
		}

		switch event := event.(type) {
		case *tcell.EventKey:
			if event.Key() == tcell.KeyEscape || event.Key() == tcell.KeyCtrlC {
				t.logger.Debug("terminal quit requested")
				t.quit()
				return
			}
			if event.Key() != tcell.KeyRune {
				continue
			}
			key, ok := defaultKeyMap[unicode.ToLower(event.Rune())]
			if !ok {
				continue
			}
			t.mu.Lock()
			t.pressed[key] = time.Now()
			t.mu.Unlock()

		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *Terminal) drawStatus() {
	status := "        "
	if t.buzzing {
		status = " BEEP   "
	}
	style := tcell.StyleDefault
	for i, r := range status {
		t.screen.SetContent(i, display.Height, r, nil, style)
	}
}
