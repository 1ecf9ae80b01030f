package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/massung/superchip8/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestTerminalRender(t *testing.T) {
	var buf bytes.Buffer
	term := &Terminal{out: &buf, width: chip8.ScreenWidth, height: chip8.ScreenHeight / 2}

	s := chip8.Screen{Resolution: chip8.LowRes}
	s.Pixels[0][0] = true
	s.Pixels[1][1] = true
	s.Pixels[0][2] = true
	s.Pixels[1][2] = true
	s.Pixels[31][63] = true

	assert.NoError(t, term.Render(&s))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\x1b[H"))

	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, "\x1b[H"), "\n"), "\n")
	assert.Len(t, lines, 16)
	assert.Equal(t, "▀▄█"+strings.Repeat(" ", 61), lines[0])
	assert.Equal(t, strings.Repeat(" ", 63)+"▄", lines[15])
}

func TestTerminalRenderClipped(t *testing.T) {
	var buf bytes.Buffer
	term := &Terminal{out: &buf, width: 4, height: 1}

	s := chip8.Screen{Resolution: chip8.HighRes}
	s.Pixels[0][3] = true
	s.Pixels[0][4] = true
	s.Pixels[2][0] = true

	assert.NoError(t, term.Render(&s))
	assert.Equal(t, "\x1b[H   ▀\n", buf.String())
}

func TestTerminalLoopFrames(t *testing.T) {
	vm := chip8.New(chip8.Config{Logger: log.NewTestLogger(t)})
	assert.NoError(t, vm.LoadProgram([]byte{0x00, 0xFD}))

	var buf bytes.Buffer
	term := &Terminal{out: &buf, width: chip8.ScreenWidth, height: chip8.ScreenHeight / 2, frames: 3}

	assert.NoError(t, term.Loop(context.Background(), vm))
	assert.Equal(t, uint64(3), vm.Frames())

	// frames 0 and 2 plus the final frame
	assert.Equal(t, 3, strings.Count(buf.String(), "\x1b[H"))
}

func TestTerminalLoopHalted(t *testing.T) {
	vm := chip8.New(chip8.Config{Logger: log.NewTestLogger(t)})
	vm.Stop()

	var buf bytes.Buffer
	term := &Terminal{out: &buf, width: chip8.ScreenWidth, height: chip8.ScreenHeight / 2}

	assert.NoError(t, term.Loop(context.Background(), vm))
	assert.Equal(t, uint64(0), vm.Frames())
	assert.Equal(t, 1, strings.Count(buf.String(), "\x1b[H"))
}
