package main

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func TestLetterbox(t *testing.T) {
	// exact fit
	assert.Equal(t, sdl.Rect{W: 640, H: 320}, letterbox(640, 320, 64, 32))

	// wide window centers horizontally
	assert.Equal(t, sdl.Rect{X: 160, W: 640, H: 320}, letterbox(960, 320, 64, 32))

	// tall window centers vertically with whole pixels
	assert.Equal(t, sdl.Rect{X: 5, Y: 85, W: 640, H: 320}, letterbox(650, 490, 64, 32))

	// never smaller than one pixel
	assert.Equal(t, sdl.Rect{X: -32, Y: -16, W: 128, H: 64}, letterbox(64, 32, 128, 64))
}
