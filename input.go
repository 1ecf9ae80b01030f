package main

import (
	"github.com/massung/superchip8/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

// DefaultKeyMap maps a modern keyboard to the CHIP-8 hex keypad.
var DefaultKeyMap = map[sdl.Scancode]byte{
	sdl.SCANCODE_X: 0x0,
	sdl.SCANCODE_1: 0x1,
	sdl.SCANCODE_2: 0x2,
	sdl.SCANCODE_3: 0x3,
	sdl.SCANCODE_Q: 0x4,
	sdl.SCANCODE_W: 0x5,
	sdl.SCANCODE_E: 0x6,
	sdl.SCANCODE_A: 0x7,
	sdl.SCANCODE_S: 0x8,
	sdl.SCANCODE_D: 0x9,
	sdl.SCANCODE_Z: 0xA,
	sdl.SCANCODE_C: 0xB,
	sdl.SCANCODE_4: 0xC,
	sdl.SCANCODE_R: 0xD,
	sdl.SCANCODE_F: 0xE,
	sdl.SCANCODE_V: 0xF,
}

// Keyboard implements chip8.Keyboard over the SDL keyboard state.
type Keyboard struct {
	keys  [chip8.KeyCount][]sdl.Scancode
	state func() []uint8
}

// NewKeyboard creates a keyboard from a scancode mapping. Several scancodes
// may map to the same key.
func NewKeyboard(keyMap map[sdl.Scancode]byte) *Keyboard {
	kb := &Keyboard{
		state: sdl.GetKeyboardState,
	}

	for sc, key := range keyMap {
		kb.keys[key&0xF] = append(kb.keys[key&0xF], sc)
	}

	return kb
}

// IsKeyDown returns true if any scancode mapped to the key is held.
func (kb *Keyboard) IsKeyDown(key byte) bool {
	state := kb.state()

	for _, sc := range kb.keys[key&0xF] {
		if int(sc) < len(state) && state[sc] != 0 {
			return true
		}
	}

	return false
}

// ProcessEvents from SDL. Returns false once the user wants to quit.
func (w *Window) ProcessEvents(vm *chip8.VM) bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			if ev.Type != sdl.KEYDOWN || ev.Repeat != 0 {
				continue
			}

			switch ev.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				return false
			case sdl.SCANCODE_LEFTBRACKET:
				w.logger.Info("Speed", log.Int("cycles", int(vm.DecSpeed())))
				w.updateTitle(vm)
			case sdl.SCANCODE_RIGHTBRACKET:
				w.logger.Info("Speed", log.Int("cycles", int(vm.IncSpeed())))
				w.updateTitle(vm)
			case sdl.SCANCODE_F5, sdl.SCANCODE_SPACE:
				w.paused = !w.paused
				w.updateTitle(vm)
			}
		}
	}

	return true
}
