package chip8

import "sync/atomic"

// KeyCount is the number of keys on the CHIP-8 hex keypad.
const KeyCount = 16

// Keyboard reports the state of the hex keypad. It is polled once per
// frame by the frame tick.
type Keyboard interface {
	IsKeyDown(key byte) bool
}

// Keypad is a snapshot of all 16 keys packed into one atomic bitmask. The
// frame tick writes it wholesale and the CPU reads it.
type Keypad struct {
	bits atomic.Uint32
}

// Scan polls every key of kb and stores the result.
func (k *Keypad) Scan(kb Keyboard) {
	var mask uint16

	for key := byte(0); key < KeyCount; key++ {
		if kb.IsKeyDown(key) {
			mask |= 1 << key
		}
	}

	k.Store(mask)
}

// Store replaces the snapshot.
func (k *Keypad) Store(mask uint16) {
	k.bits.Store(uint32(mask))
}

// Load returns the snapshot.
func (k *Keypad) Load() uint16 {
	return uint16(k.bits.Load())
}

// IsDown is true if key (masked to 0-F) is pressed.
func (k *Keypad) IsDown(key byte) bool {
	return k.Load()&(1<<(key&0xF)) != 0
}

// FirstDown returns the lowest pressed key.
func (k *Keypad) FirstDown() (byte, bool) {
	mask := k.Load()

	for key := byte(0); key < KeyCount; key++ {
		if mask&(1<<key) != 0 {
			return key, true
		}
	}

	return 0, false
}

type noKeyboard struct{}

func (noKeyboard) IsKeyDown(byte) bool { return false }
