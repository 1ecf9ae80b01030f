package main

import (
	"fmt"
	"sync"

	"github.com/massung/superchip8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	// SampleFreq is the requested playback frequency of the device.
	SampleFreq = 44100

	// BeepFreq is the tone used when no beep sound file is given.
	BeepFreq = 440
)

// Audio plays registered sounds on an SDL audio device.
type Audio struct {
	mu     sync.Mutex
	id     sdl.AudioDeviceID
	spec   sdl.AudioSpec
	sounds map[chip8.Sound][]byte
}

// OpenAudio opens the default playback device. SDL must already be
// initialized with INIT_AUDIO.
func OpenAudio() (*Audio, error) {
	spec := &sdl.AudioSpec{
		Freq:     SampleFreq,
		Format:   sdl.AUDIO_F32,
		Channels: 1,
		Samples:  512,
	}

	aud := &Audio{
		sounds: make(map[chip8.Sound][]byte),
	}

	var err error

	aud.id, err = sdl.OpenAudioDevice("", false, spec, &aud.spec, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAudioDevice, err)
	}

	sdl.PauseAudioDevice(aud.id, false)

	return aud, nil
}

// RegisterSound loads a sound file and associates it with a sound kind.
func (aud *Audio) RegisterSound(kind chip8.Sound, file string) error {
	p, err := loadSound(file)
	if err != nil {
		return err
	}

	aud.register(kind, p)
	return nil
}

// RegisterTone associates a generated square wave with a sound kind.
func (aud *Audio) RegisterTone(kind chip8.Sound, freq int) {
	aud.register(kind, squareWave(freq, int(aud.spec.Freq), 0.25))
}

func (aud *Audio) register(kind chip8.Sound, p pcm) {
	buf := p.resample(int(aud.spec.Freq)).encodeF32()

	aud.mu.Lock()
	defer aud.mu.Unlock()

	aud.sounds[kind] = buf
}

// PlaySound keeps a sound queued on the device. It's called once per frame
// while the sound timer is active, so the queue is only topped up once it
// is running low.
func (aud *Audio) PlaySound(kind chip8.Sound) error {
	aud.mu.Lock()
	buf, ok := aud.sounds[kind]
	aud.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSoundNotFound, kind)
	}

	// bytes for one frame of audio
	frame := uint32(aud.spec.Freq) * 4 / 60

	if sdl.GetQueuedAudioSize(aud.id) > frame*2 {
		return nil
	}

	return sdl.QueueAudio(aud.id, buf)
}

// StopSound silences the device immediately.
func (aud *Audio) StopSound(kind chip8.Sound) error {
	aud.mu.Lock()
	_, ok := aud.sounds[kind]
	aud.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSoundNotFound, kind)
	}

	sdl.ClearQueuedAudio(aud.id)
	return nil
}

// Close the audio device.
func (aud *Audio) Close() {
	sdl.ClearQueuedAudio(aud.id)
	sdl.CloseAudioDevice(aud.id)
}
