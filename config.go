package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/massung/superchip8/chip8"
	"github.com/retroenv/retrogolib/log"
)

// speedPresets are named cycles per frame budgets.
var speedPresets = map[string]uint{
	"slow":   5,
	"normal": chip8.DefaultCyclesPerFrame,
	"fast":   100,
}

type optionFlags struct {
	rom    string
	sound  string
	cpu    uint
	scale  int
	frames int
	term   bool
	trace  bool
	debug  bool
	quiet  bool
}

// UsageError is returned for bad command line arguments and should be
// followed by showing the usage.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
	help  bool
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and all flag defaults to w.
func (e *UsageError) ShowUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "usage: superchip8 [options] [rom file]\n\n")
	if e.flags != nil {
		e.flags.SetOutput(w)
		e.flags.PrintDefaults()
	}
	_, _ = fmt.Fprintln(w)
}

func parseFlags(args []string) (optionFlags, error) {
	flags := flag.NewFlagSet("superchip8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts optionFlags
	var speed string
	flags.StringVar(&opts.rom, "rom", "", "name of the ROM file to run, a file dialog is shown if not given")
	flags.StringVar(&speed, "speed", "", "speed preset (slow, normal, fast), overrides -cpu")
	flags.StringVar(&opts.sound, "sound", "", "wav or mp3 file to play as the beep sound")
	flags.UintVar(&opts.cpu, "cpu", chip8.DefaultCyclesPerFrame, "instructions executed per 60 Hz frame")
	flags.IntVar(&opts.scale, "scale", 10, "window size multiplier of the low resolution display")
	flags.BoolVar(&opts.term, "term", false, "render to the terminal instead of opening a window")
	flags.IntVar(&opts.frames, "frames", 0, "stop after this many frames, 0 runs until the program exits")
	flags.BoolVar(&opts.trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.quiet, "quiet", false, "perform operations quietly")

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{
			flags: flags,
			msg:   err.Error(),
			help:  errors.Is(err, flag.ErrHelp),
		}
	}

	switch rest := flags.Args(); {
	case len(rest) > 1:
		return opts, &UsageError{flags: flags, msg: "only one ROM file can be run"}
	case len(rest) == 1:
		if opts.rom != "" {
			return opts, &UsageError{flags: flags, msg: "ROM file given twice"}
		}
		opts.rom = rest[0]
	}

	if speed != "" {
		cpu, ok := speedPresets[speed]
		if !ok {
			return opts, &UsageError{flags: flags, msg: fmt.Sprintf("unknown speed preset '%s'", speed)}
		}
		opts.cpu = cpu
	}

	if opts.cpu == 0 {
		return opts, &UsageError{flags: flags, msg: "-cpu must be at least 1"}
	}
	if opts.frames < 0 {
		return opts, &UsageError{flags: flags, msg: "-frames can't be negative"}
	}
	if opts.trace {
		opts.debug = true
	}

	return opts, nil
}

// createLogger creates a logger with appropriate settings.
func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
