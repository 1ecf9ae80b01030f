package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// pixel reads a pixel from a screen copy returned by Back or Front.
func pixel(s Screen, x, y int) bool {
	return s.Pixel(x, y)
}

func TestAddSpriteXOR(t *testing.T) {
	var d Display
	sprite := Sprite{Height: 1, Width: 8, Data: []byte{0xA5}}

	assert.False(t, d.AddSprite(sprite, 10, 5))

	back := d.Back()
	for col := 0; col < 8; col++ {
		assert.Equal(t, 0xA5&(0x80>>col) != 0, back.Pixel(10+col, 5))
	}

	// drawing again erases it and collides
	assert.True(t, d.AddSprite(sprite, 10, 5))
	assert.Equal(t, Screen{}, d.Back())
}

func TestAddSpriteWraps(t *testing.T) {
	var d Display
	sprite := Sprite{Height: 1, Width: 8, Data: []byte{0xFF}}

	d.AddSprite(sprite, 63, 0)

	back := d.Back()
	assert.True(t, back.Pixel(63, 0))
	for x := 0; x < 7; x++ {
		assert.True(t, back.Pixel(x, 0))
	}
	assert.False(t, back.Pixel(7, 0))

	// nothing leaks into the invisible high-res area
	assert.False(t, back.Pixel(64, 0))
}

func TestAddSpriteWrapsVertically(t *testing.T) {
	var d Display
	sprite := Sprite{Height: 2, Width: 8, Data: []byte{0x80, 0x80}}

	d.AddSprite(sprite, 0, 31)

	back := d.Back()
	assert.True(t, back.Pixel(0, 31))
	assert.True(t, back.Pixel(0, 0))
}

func TestAddSprite16x16(t *testing.T) {
	var d Display
	d.SetResolution(HighRes)

	data := make([]byte, 32)
	for i := range data {
		data[i] = 0xFF
	}
	sprite := Sprite{Height: 16, Width: 16, Data: data}

	assert.False(t, d.AddSprite(sprite, 120, 60))

	back := d.Back()
	assert.True(t, back.Pixel(127, 63))
	assert.True(t, back.Pixel(0, 0))
	assert.True(t, back.Pixel(7, 11))
	assert.False(t, back.Pixel(8, 0))
	assert.False(t, back.Pixel(0, 12))
}

func TestScrollDown(t *testing.T) {
	var d Display
	d.AddSprite(Sprite{Height: 1, Width: 8, Data: []byte{0xFF}}, 0, 0)

	d.ScrollDown(1)

	back := d.Back()
	for x := 0; x < 8; x++ {
		assert.False(t, back.Pixel(x, 0))
		assert.True(t, back.Pixel(x, 1))
	}

	// rows scrolled off the bottom are gone for good
	d.ScrollDown(31)
	assert.Equal(t, Screen{}, d.Back())
}

func TestScrollRightLeft(t *testing.T) {
	var d Display
	d.AddSprite(Sprite{Height: 1, Width: 8, Data: []byte{0x80}}, 60, 3)

	d.ScrollRight(4)
	back := d.Back()
	assert.False(t, back.Pixel(60, 3))
	assert.False(t, back.Pixel(0, 3))

	// no wrap, the pixel left the visible area
	assert.Equal(t, Screen{}, back)

	d.AddSprite(Sprite{Height: 1, Width: 8, Data: []byte{0x80}}, 2, 3)
	d.ScrollLeft(4)
	assert.Equal(t, Screen{}, d.Back())

	d.AddSprite(Sprite{Height: 1, Width: 8, Data: []byte{0x80}}, 10, 3)
	d.ScrollLeft(4)
	assert.True(t, pixel(d.Back(), 6, 3))
	d.ScrollRight(4)
	assert.True(t, pixel(d.Back(), 10, 3))
	assert.False(t, pixel(d.Back(), 6, 3))
}

func TestSetResolutionKeepsPixels(t *testing.T) {
	var d Display
	d.SetResolution(HighRes)
	d.AddSprite(Sprite{Height: 1, Width: 8, Data: []byte{0x80}}, 100, 50)

	// switching down leaves the pixel outside the low-res bounds alone
	d.SetResolution(LowRes)
	back := d.Back()
	assert.True(t, back.Pixel(100, 50))
	assert.Equal(t, LowRes, back.Resolution)

	// and low-res scrolling doesn't reach it
	d.ScrollDown(4)
	assert.True(t, pixel(d.Back(), 100, 50))

	// draws wrap at the low-res extent
	d.AddSprite(Sprite{Height: 1, Width: 8, Data: []byte{0x80}}, 64, 0)
	assert.True(t, pixel(d.Back(), 0, 0))
	assert.False(t, pixel(d.Back(), 64, 0))
}

func TestSwap(t *testing.T) {
	var d Display
	d.SetResolution(HighRes)
	d.AddSprite(Sprite{Height: 1, Width: 8, Data: []byte{0x80}}, 1, 1)

	// nothing is visible until the swap
	front := d.Front()
	assert.False(t, front.Pixel(1, 1))
	assert.Equal(t, LowRes, front.Resolution)

	d.Swap()

	front = d.Front()
	assert.True(t, front.Pixel(1, 1))
	assert.Equal(t, HighRes, front.Resolution)
	w, h := front.Size()
	assert.Equal(t, 128, w)
	assert.Equal(t, 64, h)

	// later drawing doesn't touch the front buffer
	d.Clear()
	assert.True(t, pixel(d.Front(), 1, 1))
}
