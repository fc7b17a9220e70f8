// Package display models the monochrome 64x32 pixel grid. It is mutated only
// by clearing and by XOR sprite blits with wraparound addressing.
package display

import "github.com/retroenv/chip8emu/internal/chip8"

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Frame is one full framebuffer, true meaning a lit pixel.
type Frame [Height][Width]bool

// Modification describes the effect of a sprite blit on the screen.
type Modification uint8

// Sprite blit outcomes, ordered by severity: a blit that clears any
// previously lit pixel reports Clears even if it also sets pixels.
const (
	Nothing Modification = iota
	Sets
	Clears
)

// Display is the pixel grid owned by the execution engine.
type Display struct {
	pixels Frame
}

// New returns a blank display.
func New() *Display {
	return &Display{}
}

// Clear switches every pixel off.
func (d *Display) Clear() {
	d.pixels = Frame{}
}

// Pixel reports whether the pixel at the given coordinates is lit.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[y][x]
}

// Frame returns a copy of the current framebuffer.
func (d *Display) Frame() Frame {
	return d.pixels
}

// Sprite XOR-blits the sprite rows onto the grid at (x, y). Coordinates wrap
// modulo the grid dimensions. The returned modification reports Clears iff
// any pixel transitioned from lit to unlit, the collision condition.
func (d *Display) Sprite(x, y chip8.Datum, rows []chip8.Datum) Modification {
	modification := Nothing
	for rowIndex, row := range rows {
		py := (int(y) + rowIndex) % Height
		for bit := range 8 {
			if row&(0x80>>bit) == 0 {
				continue
			}
			px := (int(x) + bit) % Width
			if modification == Nothing {
				modification = Sets
			}
			if d.xorPixel(px, py) {
				modification = Clears
			}
		}
	}
	return modification
}

// xorPixel toggles one pixel and reports whether it was cleared.
func (d *Display) xorPixel(x, y int) bool {
	was := d.pixels[y][x]
	d.pixels[y][x] = !was
	return was
}
