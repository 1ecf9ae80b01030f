package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// pcm is mono sample data in the range -1..1.
type pcm struct {
	sampleRate int
	data       []float32
}

// loadSound decodes a .wav or .mp3 file.
func loadSound(file string) (pcm, error) {
	f, err := os.Open(file)
	if err != nil {
		return pcm{}, fmt.Errorf("%w: %w", ErrSoundLoad, err)
	}
	defer func() {
		_ = f.Close()
	}()

	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".wav":
		return decodeWAV(f)
	case ".mp3":
		return decodeMP3(f)
	default:
		return pcm{}, fmt.Errorf("%w: unsupported format '%s'", ErrSoundLoad, ext)
	}
}

func decodeWAV(r io.ReadSeeker) (pcm, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return pcm{}, fmt.Errorf("%w: not a valid wav file", ErrSoundLoad)
	}

	// load all data at once
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return pcm{}, fmt.Errorf("%w: wav: %w", ErrSoundLoad, err)
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		return pcm{}, fmt.Errorf("%w: wav has no channels", ErrSoundLoad)
	}

	depth := int(dec.BitDepth)
	if depth < 8 || depth > 32 {
		return pcm{}, fmt.Errorf("%w: unsupported bit depth %d", ErrSoundLoad, depth)
	}
	scale := float32(int64(1) << (depth - 1))

	// copy first channel only of data stream
	p := pcm{
		sampleRate: int(dec.SampleRate),
		data:       make([]float32, 0, len(buf.Data)/channels),
	}

	for i := 0; i < len(buf.Data); i += channels {
		sample := buf.Data[i]

		// 8-bit wav data is unsigned
		if depth == 8 {
			sample -= 128
		}

		p.data = append(p.data, float32(sample)/scale)
	}

	return p, nil
}

func decodeMP3(r io.Reader) (pcm, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return pcm{}, fmt.Errorf("%w: mp3: %w", ErrSoundLoad, err)
	}

	// always 16-bit little endian stereo
	stream, err := io.ReadAll(dec)
	if err != nil {
		return pcm{}, fmt.Errorf("%w: mp3: %w", ErrSoundLoad, err)
	}

	p := pcm{
		sampleRate: dec.SampleRate(),
		data:       make([]float32, 0, len(stream)/4),
	}

	// left channel only
	for i := 0; i+1 < len(stream); i += 4 {
		sample := int16(binary.LittleEndian.Uint16(stream[i:]))
		p.data = append(p.data, float32(sample)/32768)
	}

	return p, nil
}

// squareWave generates a tone, used when no beep sound file is given.
func squareWave(freq, sampleRate int, seconds float64) pcm {
	n := int(float64(sampleRate) * seconds)
	p := pcm{
		sampleRate: sampleRate,
		data:       make([]float32, n),
	}

	period := sampleRate / freq
	if period < 2 {
		period = 2
	}

	for i := range p.data {
		if i%period < period/2 {
			p.data[i] = 0.25
		} else {
			p.data[i] = -0.25
		}
	}

	return p
}

// resample converts to a new sample rate by picking the nearest sample.
func (p pcm) resample(sampleRate int) pcm {
	if p.sampleRate == sampleRate || p.sampleRate == 0 || len(p.data) == 0 {
		return p
	}

	n := int(int64(len(p.data)) * int64(sampleRate) / int64(p.sampleRate))
	out := pcm{
		sampleRate: sampleRate,
		data:       make([]float32, n),
	}

	for i := range out.data {
		out.data[i] = p.data[int64(i)*int64(p.sampleRate)/int64(sampleRate)]
	}

	return out
}

// encodeF32 packs samples as little endian 32-bit floats for the device.
func (p pcm) encodeF32() []byte {
	buf := make([]byte, len(p.data)*4)

	for i, s := range p.data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(s))
	}

	return buf
}
