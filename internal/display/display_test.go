package display

import (
	"testing"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestSpriteSetsPixels(t *testing.T) {
	d := New()

	mod := d.Sprite(0, 0, []chip8.Datum{0b10100000})
	assert.Equal(t, Sets, mod)
	assert.True(t, d.Pixel(0, 0))
	assert.False(t, d.Pixel(1, 0))
	assert.True(t, d.Pixel(2, 0))
}

func TestSpriteCollision(t *testing.T) {
	d := New()

	first := d.Sprite(4, 2, []chip8.Datum{0xFF})
	assert.Equal(t, Sets, first)

	// drawing the same sprite again clears every pixel it set
	second := d.Sprite(4, 2, []chip8.Datum{0xFF})
	assert.Equal(t, Clears, second)
	for x := 4; x < 12; x++ {
		assert.False(t, d.Pixel(x, 2))
	}
}

func TestSpriteWrapsAround(t *testing.T) {
	d := New()

	mod := d.Sprite(62, 31, []chip8.Datum{0xF0, 0xF0})
	assert.Equal(t, Sets, mod)

	// columns 62, 63 wrap to 0, 1; row 31 wraps to 0 for the second row
	assert.True(t, d.Pixel(62, 31))
	assert.True(t, d.Pixel(63, 31))
	assert.True(t, d.Pixel(0, 31))
	assert.True(t, d.Pixel(1, 31))
	assert.True(t, d.Pixel(62, 0))
	assert.True(t, d.Pixel(0, 0))
}

func TestSpriteEmptyRows(t *testing.T) {
	d := New()

	mod := d.Sprite(0, 0, []chip8.Datum{0x00, 0x00})
	assert.Equal(t, Nothing, mod)
}

func TestClear(t *testing.T) {
	d := New()
	d.Sprite(0, 0, []chip8.Datum{0xFF})

	d.Clear()
	frame := d.Frame()
	for y := range Height {
		for x := range Width {
			assert.False(t, frame[y][x])
		}
	}
}

func TestFrameIsACopy(t *testing.T) {
	d := New()
	frame := d.Frame()
	d.Sprite(0, 0, []chip8.Datum{0x80})

	assert.False(t, frame[0][0])
	assert.True(t, d.Frame()[0][0])
}
