package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/massung/superchip8/chip8"
	"golang.org/x/term"
)

// Terminal presents the VM display as text, two pixel rows per line.
type Terminal struct {
	out    io.Writer
	width  int
	height int
	frames int
}

// NewTerminal creates a terminal presenter writing to f. When f is a
// terminal the output is clipped to its size. A positive frames count
// stops the presenter after that many frames.
func NewTerminal(f *os.File, frames int) *Terminal {
	t := &Terminal{
		out:    f,
		width:  chip8.ScreenWidth,
		height: chip8.ScreenHeight / 2,
		frames: frames,
	}

	if fd := int(f.Fd()); term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil {
			t.width, t.height = w, h-1
		}
	}

	return t
}

// Loop runs the 60 Hz frame clock until the VM halts, the frame limit is
// reached, or the context is cancelled.
func (t *Terminal) Loop(ctx context.Context, vm *chip8.VM) error {
	video := time.NewTicker(time.Second / 60)
	defer video.Stop()

	for frame := 0; t.frames <= 0 || frame < t.frames; frame++ {
		if vm.State() == chip8.Halted {
			break
		}

		select {
		case <-ctx.Done():
			return nil
		case <-video.C:
		}

		vm.VBlank()

		// text output is slow, only draw every other frame
		if frame&1 == 0 {
			front := vm.Display().Front()
			if err := t.Render(&front); err != nil {
				return err
			}
		}
	}

	// always show the final frame
	front := vm.Display().Front()
	return t.Render(&front)
}

// Render writes a screen, homing the cursor first.
func (t *Terminal) Render(s *chip8.Screen) error {
	w := bufio.NewWriter(t.out)

	if _, err := w.WriteString("\x1b[H"); err != nil {
		return err
	}

	vw, vh := s.Size()
	vw = min(vw, t.width)
	vh = min(vh, t.height*2)

	for y := 0; y < vh; y += 2 {
		for x := 0; x < vw; x++ {
			top := s.Pixel(x, y)
			bottom := y+1 < vh && s.Pixel(x, y+1)

			var cell string
			switch {
			case top && bottom:
				cell = "█"
			case top:
				cell = "▀"
			case bottom:
				cell = "▄"
			default:
				cell = " "
			}

			if _, err := w.WriteString(cell); err != nil {
				return err
			}
		}

		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}

	return w.Flush()
}
