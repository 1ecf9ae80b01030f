package chip8

import (
	"fmt"
	"sync/atomic"
)

// StackSize is the maximum call depth.
const StackSize = 16

// Timer is an 8-bit countdown register. It is written by the executing
// program and decremented at 60 Hz by the frame tick, so it is atomic.
type Timer struct {
	v atomic.Uint32
}

// Load returns the current timer value.
func (t *Timer) Load() byte {
	return byte(t.v.Load())
}

// Store sets the timer value.
func (t *Timer) Store(b byte) {
	t.v.Store(uint32(b))
}

// Decrement counts the timer down by one. It returns the new value and
// false if the timer was already zero.
func (t *Timer) Decrement() (byte, bool) {
	for {
		old := t.v.Load()
		if old == 0 {
			return 0, false
		}

		if t.v.CompareAndSwap(old, old-1) {
			return byte(old - 1), true
		}
	}
}

// Registers is the CHIP-8 register file and call stack.
type Registers struct {
	// V are the 16 virtual registers. VF doubles as the flag register.
	V [16]byte

	// RPL are the persistent flag registers used by FX75 and FX85.
	RPL [16]byte

	// I is the address register.
	I uint16

	// PC is the program counter. All programs begin at 0x200.
	PC uint16

	// SP is the number of return addresses on the stack.
	SP uint8

	// Stack holds return addresses for CALL.
	Stack [StackSize]uint16

	// DT and ST are the delay and sound timers.
	DT Timer
	ST Timer
}

// Clear resets every register and empties the stack.
func (r *Registers) Clear() {
	r.V = [16]byte{}
	r.RPL = [16]byte{}
	r.I = 0
	r.PC = ProgramStart
	r.SP = 0
	r.Stack = [StackSize]uint16{}
	r.DT.Store(0)
	r.ST.Store(0)
}

// Push a return address onto the stack.
func (r *Registers) Push(address uint16) error {
	if r.SP >= StackSize {
		return fmt.Errorf("%w: push #%04X", ErrStackOverflow, address)
	}

	r.Stack[r.SP] = address
	r.SP++

	return nil
}

// Pop the most recently pushed return address.
func (r *Registers) Pop() (uint16, error) {
	if r.SP == 0 {
		return 0, ErrStackUnderflow
	}

	r.SP--

	return r.Stack[r.SP], nil
}
