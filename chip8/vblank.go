package chip8

import "github.com/retroenv/retrogolib/log"

// VBlank is the 60 Hz frame tick. It must be called once per frame by the
// presentation loop and returns without blocking. It releases the CPU for
// another frame's worth of cycles, ages the timers, samples the keyboard
// and publishes the back buffer.
func (vm *VM) VBlank() {
	vm.cycles.Store(0)

	// wake the CPU if it is waiting on the frame
	select {
	case vm.tick <- struct{}{}:
	default:
	}

	vm.DT.Decrement()

	if st, ok := vm.ST.Decrement(); ok {
		var err error

		if st == 0 {
			err = vm.audio.StopSound(Beep)
		} else {
			err = vm.audio.PlaySound(Beep)
		}

		// only complain once, this runs every frame
		if err != nil && !vm.audioWarned {
			vm.audioWarned = true
			vm.logger.Warn("Sound playback failed", log.String("sound", Beep.String()), log.Err(err))
		}
	}

	vm.keypad.Scan(vm.keyboard)
	vm.display.Swap()
	vm.frames.Add(1)
}
