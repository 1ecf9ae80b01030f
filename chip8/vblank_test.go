package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestVBlankTimers(t *testing.T) {
	audio := &fakeAudio{}
	vm := New(Config{Logger: log.NewTestLogger(t), Audio: audio})
	vm.DT.Store(2)
	vm.ST.Store(3)

	vm.VBlank()
	assert.Equal(t, byte(1), vm.DT.Load())
	assert.Equal(t, byte(2), vm.ST.Load())

	vm.VBlank()
	vm.VBlank()
	assert.Equal(t, byte(0), vm.DT.Load())
	assert.Equal(t, byte(0), vm.ST.Load())

	// timers stop at zero and the sound isn't touched any more
	vm.VBlank()
	assert.Equal(t, byte(0), vm.DT.Load())
	assert.Equal(t, []string{"play beep", "play beep", "stop beep"}, audio.Calls())
}

func TestVBlankAudioErrors(t *testing.T) {
	audio := &fakeAudio{err: errors.New("no device")}
	vm := New(Config{Logger: log.NewTestLogger(t), Audio: audio})
	vm.ST.Store(5)

	vm.VBlank()
	vm.VBlank()

	// not fatal, the timer keeps counting
	assert.Equal(t, byte(3), vm.ST.Load())
	assert.Len(t, audio.Calls(), 2)
}

func TestVBlankKeypad(t *testing.T) {
	kb := &fakeKeyboard{}
	vm := New(Config{Logger: log.NewTestLogger(t), Keyboard: kb})

	kb.mask.Store(1<<0 | 1<<0xF)
	vm.VBlank()

	assert.Equal(t, uint16(0x8001), vm.Keypad().Load())
	assert.True(t, vm.Keypad().IsDown(0xF))
	assert.False(t, vm.Keypad().IsDown(0x1))

	key, ok := vm.Keypad().FirstDown()
	assert.True(t, ok)
	assert.Equal(t, byte(0), key)

	kb.mask.Store(0)
	vm.VBlank()

	_, ok = vm.Keypad().FirstDown()
	assert.False(t, ok)
}

func TestVBlankSwapsAndResetsCycles(t *testing.T) {
	vm := newTestVM(t, 0x00FF, 0x6000, 0xF029, 0xD005)
	step(t, vm, 4)
	assert.Equal(t, uint(4), vm.Cycles())
	assert.False(t, pixel(vm.Display().Front(), 0, 0))

	vm.VBlank()

	assert.Equal(t, uint(0), vm.Cycles())
	front := vm.Display().Front()
	assert.True(t, front.Pixel(0, 0))
	assert.Equal(t, HighRes, front.Resolution)
	assert.Equal(t, uint64(1), vm.Frames())
}

func TestHistoryWindow(t *testing.T) {
	h := NewHistory(3)
	assert.Equal(t, 0, h.Len())
	assert.Len(t, h.Window(5), 0)

	h.Add(0x200, Decode(0x6001))
	h.Add(0x202, Decode(0x6102))
	assert.Equal(t, []Trace{
		{PC: 0x200, Opcode: Decode(0x6001)},
		{PC: 0x202, Opcode: Decode(0x6102)},
	}, h.Window(5))

	h.Add(0x204, Decode(0x6203))
	h.Add(0x206, Decode(0x00FD))

	// oldest dropped
	window := h.Window(3)
	assert.Len(t, window, 3)
	assert.Equal(t, uint16(0x202), window[0].PC)
	assert.Equal(t, "0206 - EXIT", window[2].String())

	window = h.Window(1)
	assert.Equal(t, uint16(0x206), window[0].PC)

	h.Reset()
	assert.Equal(t, 0, h.Len())
}
