package chip8

import "sync"

// Resolution is the active screen mode.
type Resolution int

const (
	// LowRes is the original 64x32 CHIP-8 screen.
	LowRes Resolution = iota

	// HighRes is the 128x64 SuperChip-8 screen.
	HighRes
)

const (
	// ScreenWidth and ScreenHeight are the dimensions of the largest
	// supported resolution. Every Screen is allocated at this size.
	ScreenWidth  = 128
	ScreenHeight = 64
)

// Size returns the width and height of the resolution in pixels.
func (r Resolution) Size() (int, int) {
	if r == HighRes {
		return 128, 64
	}

	return 64, 32
}

func (r Resolution) String() string {
	if r == HighRes {
		return "128x64"
	}

	return "64x32"
}

// Screen is a monochrome bitmap. Only the top-left area matching the
// resolution is visible. Front and Back return copies, so store them
// before calling methods on them.
type Screen struct {
	Pixels     [ScreenHeight][ScreenWidth]bool
	Resolution Resolution
}

// Size returns the visible width and height.
func (s *Screen) Size() (int, int) {
	return s.Resolution.Size()
}

// Pixel returns true if the pixel at x, y is set.
func (s *Screen) Pixel(x, y int) bool {
	return s.Pixels[y][x]
}

// Display is a double-buffered screen. The CHIP-8 draws into the back
// buffer and presenters only ever see the front buffer, which is replaced
// once per frame by Swap.
type Display struct {
	mu    sync.Mutex
	back  Screen
	front Screen
}

// Clear the back buffer.
func (d *Display) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.back.Pixels = [ScreenHeight][ScreenWidth]bool{}
}

// SetResolution changes the logical size of the back buffer. Pixels are
// left untouched.
func (d *Display) SetResolution(r Resolution) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.back.Resolution = r
}

// AddSprite XORs a sprite onto the back buffer at x, y. Pixels that fall
// off an edge wrap around to the other side. Returns true if any set
// pixel was turned off.
func (d *Display) AddSprite(sprite Sprite, x, y byte) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, h := d.back.Size()
	collision := false

	for row := 0; row < sprite.Height; row++ {
		line := sprite.Row(row)

		// wrap the scan line
		py := (int(y) + row) % h

		for col := 0; col < sprite.Width; col++ {
			if line&(1<<uint(sprite.Width-1-col)) == 0 {
				continue
			}

			// wrap the column
			px := (int(x) + col) % w

			if d.back.Pixels[py][px] {
				collision = true
			}

			d.back.Pixels[py][px] = !d.back.Pixels[py][px]
		}
	}

	return collision
}

// ScrollDown moves the visible area down n rows. Rows scrolled off the
// bottom are lost and the top n rows are cleared.
func (d *Display) ScrollDown(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, h := d.back.Size()
	if n > h {
		n = h
	}

	for y := h - 1; y >= n; y-- {
		copy(d.back.Pixels[y][:w], d.back.Pixels[y-n][:w])
	}

	for y := 0; y < n; y++ {
		clearRow(d.back.Pixels[y][:w])
	}
}

// ScrollRight moves the visible area right n columns.
func (d *Display) ScrollRight(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, h := d.back.Size()
	if n > w {
		n = w
	}

	for y := 0; y < h; y++ {
		row := d.back.Pixels[y][:w]

		copy(row[n:], row[:w-n])
		clearRow(row[:n])
	}
}

// ScrollLeft moves the visible area left n columns.
func (d *Display) ScrollLeft(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, h := d.back.Size()
	if n > w {
		n = w
	}

	for y := 0; y < h; y++ {
		row := d.back.Pixels[y][:w]

		copy(row, row[n:])
		clearRow(row[w-n:])
	}
}

// Swap publishes the back buffer to the front buffer.
func (d *Display) Swap() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.front = d.back
}

// Front returns a copy of the front buffer.
func (d *Display) Front() Screen {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.front
}

// Back returns a copy of the back buffer. Mostly useful for tests and
// debugging since it may be mid-frame.
func (d *Display) Back() Screen {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.back
}

func clearRow(row []bool) {
	for i := range row {
		row[i] = false
	}
}
