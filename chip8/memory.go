/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package chip8

import "fmt"

const (
	// RAMSize is the number of addressable bytes.
	RAMSize = 0x1000

	// ProgramStart is where programs are loaded and where PC begins.
	// Everything below it is reserved for the font sprites.
	ProgramStart = 0x200
)

// RAM is the memory addressable by the CHIP-8.
//
//	0x000-0x04F  low-res font
//	0x050-0x0EF  high-res font
//	0x0F0-0x1FF  unused
//	0x200-0xFFF  program
type RAM struct {
	mem [RAMSize]byte
}

// Clear zeroes all of memory.
func (ram *RAM) Clear() {
	ram.mem = [RAMSize]byte{}
}

// ClearProgram zeroes program memory, leaving the fonts in place.
func (ram *RAM) ClearProgram() {
	for i := ProgramStart; i < RAMSize; i++ {
		ram.mem[i] = 0
	}
}

// Load copies data into memory at offset. Nothing is written if the data
// doesn't fit.
func (ram *RAM) Load(data []byte, offset int) error {
	if offset < 0 || offset+len(data) > RAMSize {
		return fmt.Errorf("%w: %d bytes at #%04X", ErrOutOfRange, len(data), offset)
	}

	copy(ram.mem[offset:], data)

	return nil
}

// Peek returns the byte at address.
func (ram *RAM) Peek(address uint16) (byte, error) {
	if int(address) >= RAMSize {
		return 0, fmt.Errorf("%w: read #%04X", ErrOutOfRange, address)
	}

	return ram.mem[address], nil
}

// Poke stores b at address.
func (ram *RAM) Poke(address uint16, b byte) error {
	if int(address) >= RAMSize {
		return fmt.Errorf("%w: write #%04X", ErrOutOfRange, address)
	}

	ram.mem[address] = b

	return nil
}

// ReadWord returns the big-endian 16-bit word at address.
func (ram *RAM) ReadWord(address uint16) (uint16, error) {
	if int(address)+1 >= RAMSize {
		return 0, fmt.Errorf("%w: read word #%04X", ErrOutOfRange, address)
	}

	return uint16(ram.mem[address])<<8 | uint16(ram.mem[address+1]), nil
}

// IsReadable is true if size bytes starting at address are all in memory.
func (ram *RAM) IsReadable(address uint16, size int) bool {
	return int(address) < RAMSize && size >= 0 && int(address)+size <= RAMSize
}

// Slice returns a read-only view of size bytes starting at address.
func (ram *RAM) Slice(address uint16, size int) ([]byte, error) {
	if !ram.IsReadable(address, size) {
		return nil, fmt.Errorf("%w: %d bytes at #%04X", ErrOutOfRange, size, address)
	}

	return ram.mem[address : int(address)+size : int(address)+size], nil
}
