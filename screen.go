package main

import (
	"context"
	"fmt"
	"time"

	"github.com/massung/superchip8/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

// Window presents the VM display with SDL and drives the frame clock.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	screen   *sdl.Texture
	logger   *log.Logger
	title    string
	paused   bool
}

// NewWindow creates the main window, renderer, and the render target for
// the CHIP-8 video memory.
func NewWindow(logger *log.Logger, title string, scale int) (*Window, error) {
	if scale < 1 {
		scale = 1
	}

	w := &Window{
		logger: logger,
		title:  title,
	}

	var err error

	// initial size fits the low resolution display
	width, height := chip8.LowRes.Size()
	flags := sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE
	w.window, w.renderer, err = sdl.CreateWindowAndRenderer(int32(width*scale), int32(height*scale), uint32(flags))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWindow, err)
	}

	w.window.SetTitle(title)

	// create a render target for the display
	w.screen, err = w.renderer.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_TARGET, chip8.ScreenWidth, chip8.ScreenHeight)
	if err != nil {
		w.Destroy()
		return nil, fmt.Errorf("%w: %w", ErrWindow, err)
	}

	return w, nil
}

// Loop runs the 60 Hz frame clock until the user quits, the VM halts, or
// the context is cancelled. Every frame ticks the VM's VBlank and presents
// the front buffer.
func (w *Window) Loop(ctx context.Context, vm *chip8.VM) error {
	video := time.NewTicker(time.Second / 60)
	defer video.Stop()

	w.updateTitle(vm)

	for w.ProcessEvents(vm) {
		if vm.State() == chip8.Halted {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-video.C:
		}

		if !w.paused {
			vm.VBlank()
		}

		front := vm.Display().Front()
		if err := w.Refresh(&front); err != nil {
			return err
		}
	}

	return nil
}

// Refresh draws a screen, scaled to fit the window and centered.
func (w *Window) Refresh(s *chip8.Screen) error {
	if err := w.renderer.SetRenderTarget(w.screen); err != nil {
		return fmt.Errorf("setting render target: %w", err)
	}

	// the background color for the screen
	_ = w.renderer.SetDrawColor(143, 145, 133, 255)
	_ = w.renderer.Clear()

	// set the pixel color
	_ = w.renderer.SetDrawColor(17, 29, 43, 255)

	// redraw only the dimensions of the video
	vw, vh := s.Size()
	for y := 0; y < vh; y++ {
		for x := 0; x < vw; x++ {
			if s.Pixel(x, y) {
				_ = w.renderer.DrawPoint(int32(x), int32(y))
			}
		}
	}

	// restore the render target
	if err := w.renderer.SetRenderTarget(nil); err != nil {
		return fmt.Errorf("restoring render target: %w", err)
	}

	_ = w.renderer.SetDrawColor(32, 42, 53, 255)
	_ = w.renderer.Clear()

	ww, wh := w.window.GetSize()
	dst := letterbox(ww, wh, int32(vw), int32(vh))

	// stretch the render target to fit
	src := sdl.Rect{W: int32(vw), H: int32(vh)}
	if err := w.renderer.Copy(w.screen, &src, &dst); err != nil {
		return fmt.Errorf("copying screen: %w", err)
	}

	// frame the display area
	_ = w.renderer.SetDrawColor(95, 112, 120, 255)
	_ = w.renderer.DrawRect(&sdl.Rect{X: dst.X - 1, Y: dst.Y - 1, W: dst.W + 2, H: dst.H + 2})

	w.renderer.Present()
	return nil
}

// Destroy the window and all SDL resources it owns.
func (w *Window) Destroy() {
	if w.screen != nil {
		_ = w.screen.Destroy()
	}
	if w.renderer != nil {
		_ = w.renderer.Destroy()
	}
	if w.window != nil {
		_ = w.window.Destroy()
	}
}

func (w *Window) updateTitle(vm *chip8.VM) {
	title := fmt.Sprintf("%s [%d cycles/frame]", w.title, vm.CyclesPerFrame())
	if w.paused {
		title += " - PAUSED"
	}

	w.window.SetTitle(title)
}

// letterbox returns the largest whole-pixel scaling of a vw x vh display
// that fits in the window, centered.
func letterbox(ww, wh, vw, vh int32) sdl.Rect {
	pixel := min(ww/vw, wh/vh)
	if pixel < 1 {
		pixel = 1
	}

	w, h := vw*pixel, vh*pixel

	return sdl.Rect{
		X: (ww - w) / 2,
		Y: (wh - h) / 2,
		W: w,
		H: h,
	}
}
