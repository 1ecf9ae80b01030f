package main

import "errors"

var (
	// ErrAudioDevice is returned when no audio device can be opened.
	ErrAudioDevice = errors.New("failed to open audio device")

	// ErrSoundLoad is returned when a sound file can't be decoded.
	ErrSoundLoad = errors.New("failed to load sound")

	// ErrSoundNotFound is returned when playing a sound that was never
	// registered.
	ErrSoundNotFound = errors.New("sound not found")

	// ErrWindow is returned when the window or renderer can't be created.
	ErrWindow = errors.New("window creation error")
)
