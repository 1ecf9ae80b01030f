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

// Trace is a single executed instruction.
type Trace struct {
	PC     uint16
	Opcode Opcode
}

func (t Trace) String() string {
	return fmt.Sprintf("%04X - %s", t.PC, t.Opcode)
}

// History keeps the most recently executed instructions so that the
// lead-up to a failure can be logged.
type History struct {
	// buf is a ring of traced instructions.
	buf []Trace

	// pos is the next slot to write.
	pos int

	// full is true once the ring has wrapped.
	full bool
}

// NewHistory creates a History holding up to n instructions.
func NewHistory(n int) *History {
	if n < 1 {
		n = 1
	}

	return &History{
		buf: make([]Trace, n),
	}
}

// Add records an executed instruction, dropping the oldest when full.
func (h *History) Add(pc uint16, op Opcode) {
	h.buf[h.pos] = Trace{PC: pc, Opcode: op}
	h.pos++

	if h.pos == len(h.buf) {
		h.pos = 0
		h.full = true
	}
}

// Len returns the number of recorded instructions.
func (h *History) Len() int {
	if h.full {
		return len(h.buf)
	}

	return h.pos
}

// Window returns up to the last n instructions, oldest first.
func (h *History) Window(n int) []Trace {
	count := h.Len()

	// don't scroll past the beginning
	if n > count {
		n = count
	}
	if n < 0 {
		n = 0
	}

	out := make([]Trace, 0, n)

	for i := count - n; i < count; i++ {
		if h.full {
			out = append(out, h.buf[(h.pos+i)%len(h.buf)])
		} else {
			out = append(out, h.buf[i])
		}
	}

	return out
}

// Reset forgets every recorded instruction.
func (h *History) Reset() {
	h.pos = 0
	h.full = false
}
