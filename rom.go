package main

import (
	"errors"
	"fmt"

	"github.com/sqweek/dialog"
)

// romPicker asks the user for a ROM file.
type romPicker func() (string, error)

// pickROM shows an open file dialog for CHIP-8 ROMs.
func pickROM() (string, error) {
	return dialog.File().
		Filter("CHIP-8 ROM", "ch8", "c8", "sc8").
		Title("Load ROM").
		Load()
}

// romFile returns the ROM to run, asking with the picker when none was
// given on the command line.
func romFile(opts optionFlags, pick romPicker) (string, error) {
	if opts.rom != "" {
		return opts.rom, nil
	}

	if opts.term || pick == nil {
		return "", &UsageError{msg: "no ROM file given"}
	}

	file, err := pick()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return "", &UsageError{msg: "no ROM file selected"}
		}
		return "", fmt.Errorf("selecting ROM: %w", err)
	}

	return file, nil
}
