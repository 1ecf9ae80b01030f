package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/massung/superchip8/chip8"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/sync/errgroup"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// presenter drives the frame clock and shows the display on the main
// goroutine while the VM runs on another.
type presenter interface {
	Loop(ctx context.Context, vm *chip8.VM) error
}

func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseFlags(args)
	if err != nil {
		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			printBanner(opts)
			usageErr.ShowUsage(os.Stdout)
			if usageErr.help {
				return 0
			}
		}
		return 1
	}

	logger := createLogger(opts.debug, opts.quiet)
	printBanner(opts)

	ctx := app.Context()

	if opts.term {
		err = runTerminal(ctx, logger, opts)
	} else {
		err = runWindow(ctx, logger, opts)
	}

	if err != nil {
		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			logger.Error(usageErr.Error())
			return 1
		}

		logger.Error("Emulation failed", log.Err(err))
		return 1
	}

	return 0
}

func printBanner(opts optionFlags) {
	if !opts.quiet && !opts.term {
		fmt.Println("[-----------------------------]")
		fmt.Println("[ superchip8 - CHIP-8 / SCHIP ]")
		fmt.Printf("[-----------------------------]\n\n")
		fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
	}
}

func newVM(logger *log.Logger, opts optionFlags, audio chip8.Audio, keyboard chip8.Keyboard) *chip8.VM {
	return chip8.New(chip8.Config{
		CyclesPerFrame: opts.cpu,
		Audio:          audio,
		Keyboard:       keyboard,
		Logger:         logger,
		Trace:          opts.trace,
	})
}

func runTerminal(ctx context.Context, logger *log.Logger, opts optionFlags) error {
	file, err := romFile(opts, nil)
	if err != nil {
		return err
	}

	vm := newVM(logger, opts, nil, nil)
	if err := vm.LoadFile(file); err != nil {
		return err
	}

	logger.Info("Running ROM", log.String("file", file))
	return emulate(ctx, vm, NewTerminal(os.Stdout, opts.frames))
}

func runWindow(ctx context.Context, logger *log.Logger, opts optionFlags) error {
	file, err := romFile(opts, pickROM)
	if err != nil {
		return err
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("%w: %w", ErrWindow, err)
	}
	defer sdl.Quit()

	audio, err := OpenAudio()
	if err != nil {
		return err
	}
	defer audio.Close()

	registerBeep(logger, audio, opts.sound)

	window, err := NewWindow(logger, "SuperChip-8 - "+filepath.Base(file), opts.scale)
	if err != nil {
		return err
	}
	defer window.Destroy()

	vm := newVM(logger, opts, audio, NewKeyboard(DefaultKeyMap))
	if err := vm.LoadFile(file); err != nil {
		return err
	}

	logger.Info("Running ROM", log.String("file", file))
	return emulate(ctx, vm, window)
}

// registerBeep loads the beep sound, falling back to a generated tone.
func registerBeep(logger *log.Logger, audio *Audio, file string) {
	if file != "" {
		err := audio.RegisterSound(chip8.Beep, file)
		if err == nil {
			return
		}
		logger.Warn("Using default beep", log.String("file", file), log.Err(err))
	}

	audio.RegisterTone(chip8.Beep, BeepFreq)
}

// emulate runs the VM on a worker goroutine and the presenter on the
// calling one, which must be the main thread for SDL. Whichever finishes
// first stops the other.
func emulate(ctx context.Context, vm *chip8.VM, p presenter) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := vm.Run(ctx)
		if errors.Is(err, chip8.ErrHalted) {
			return nil
		}
		return err
	})

	err := p.Loop(ctx, vm)
	vm.Stop()

	if werr := g.Wait(); werr != nil {
		return werr
	}
	return err
}
