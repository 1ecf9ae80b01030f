package main

import (
	"errors"
	"testing"

	"github.com/massung/superchip8/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/sqweek/dialog"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"games/BRIX"})
	assert.NoError(t, err)
	assert.Equal(t, "games/BRIX", opts.rom)
	assert.Equal(t, uint(chip8.DefaultCyclesPerFrame), opts.cpu)
	assert.Equal(t, 10, opts.scale)
	assert.False(t, opts.term)

	opts, err = parseFlags([]string{"-cpu", "30", "-term", "-frames", "120", "-trace", "-rom", "games/BRIX"})
	assert.NoError(t, err)
	assert.Equal(t, "games/BRIX", opts.rom)
	assert.Equal(t, uint(30), opts.cpu)
	assert.Equal(t, 120, opts.frames)
	assert.True(t, opts.term)
	assert.True(t, opts.debug)

	opts, err = parseFlags([]string{"-cpu", "30", "-speed", "fast", "a.ch8"})
	assert.NoError(t, err)
	assert.Equal(t, uint(100), opts.cpu)
}

func TestParseFlagsUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		help bool
	}{
		{name: "help", args: []string{"-h"}, help: true},
		{name: "unknown flag", args: []string{"-nope"}},
		{name: "two roms", args: []string{"a.ch8", "b.ch8"}},
		{name: "rom twice", args: []string{"-rom", "a.ch8", "b.ch8"}},
		{name: "unknown preset", args: []string{"-speed", "ludicrous", "a.ch8"}},
		{name: "zero speed", args: []string{"-cpu", "0", "a.ch8"}},
		{name: "negative frames", args: []string{"-frames", "-1", "a.ch8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args)

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
			assert.Equal(t, tt.help, usageErr.help)
		})
	}
}

func TestROMFile(t *testing.T) {
	picked := false
	pick := func() (string, error) {
		picked = true
		return "picked.ch8", nil
	}

	file, err := romFile(optionFlags{rom: "given.ch8"}, pick)
	assert.NoError(t, err)
	assert.Equal(t, "given.ch8", file)
	assert.False(t, picked)

	file, err = romFile(optionFlags{}, pick)
	assert.NoError(t, err)
	assert.Equal(t, "picked.ch8", file)
	assert.True(t, picked)

	// no dialog in terminal mode
	var usageErr *UsageError
	_, err = romFile(optionFlags{term: true}, pick)
	assert.True(t, errors.As(err, &usageErr))

	_, err = romFile(optionFlags{}, func() (string, error) { return "", dialog.ErrCancelled })
	assert.True(t, errors.As(err, &usageErr))

	failed := errors.New("no display")
	_, err = romFile(optionFlags{}, func() (string, error) { return "", failed })
	assert.True(t, errors.Is(err, failed))
	assert.False(t, errors.As(err, &usageErr))
}
