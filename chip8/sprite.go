package chip8

// Sprite is a view of the RAM bytes drawn by a single DXYN.
type Sprite struct {
	Height int

	// Width is 8 or 16 pixels. Each row of a 16 pixel sprite is two bytes.
	Width int

	Data []byte
}

// Row returns the bits of a single sprite row, MSB is the leftmost pixel.
func (s Sprite) Row(row int) uint16 {
	if s.Width == 16 {
		return uint16(s.Data[row*2])<<8 | uint16(s.Data[row*2+1])
	}

	return uint16(s.Data[row])
}

// Size returns the number of bytes the sprite reads.
func (s Sprite) Size() int {
	return s.Height * s.Width / 8
}
