package main

import (
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/retroenv/retrogolib/assert"
)

func writeWAV(t *testing.T, sampleRate, channels int, data []int) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), "beep.wav")
	f, err := os.Create(file)
	assert.NoError(t, err)

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	assert.NoError(t, enc.Write(buf))
	assert.NoError(t, enc.Close())
	assert.NoError(t, f.Close())
	return file
}

func closeTo(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestLoadSoundWAV(t *testing.T) {
	file := writeWAV(t, 8000, 1, []int{16384, -16384, 0, 32767})

	p, err := loadSound(file)
	assert.NoError(t, err)
	assert.Equal(t, 8000, p.sampleRate)
	assert.Len(t, p.data, 4)
	assert.True(t, closeTo(0.5, p.data[0]))
	assert.True(t, closeTo(-0.5, p.data[1]))
	assert.True(t, closeTo(0, p.data[2]))
	assert.True(t, closeTo(1, p.data[3]))
}

func TestLoadSoundWAVStereo(t *testing.T) {
	// interleaved left/right, only the left channel is kept
	file := writeWAV(t, 22050, 2, []int{16384, -32768, -16384, 32767})

	p, err := loadSound(file)
	assert.NoError(t, err)
	assert.Equal(t, 22050, p.sampleRate)
	assert.Len(t, p.data, 2)
	assert.True(t, closeTo(0.5, p.data[0]))
	assert.True(t, closeTo(-0.5, p.data[1]))
}

func TestLoadSoundErrors(t *testing.T) {
	_, err := loadSound(filepath.Join(t.TempDir(), "missing.wav"))
	assert.True(t, errors.Is(err, ErrSoundLoad))

	file := filepath.Join(t.TempDir(), "beep.ogg")
	assert.NoError(t, os.WriteFile(file, []byte("OggS"), 0o644))
	_, err = loadSound(file)
	assert.True(t, errors.Is(err, ErrSoundLoad))
	assert.ErrorContains(t, err, "unsupported format")

	file = filepath.Join(t.TempDir(), "junk.wav")
	assert.NoError(t, os.WriteFile(file, []byte("not a riff file at all"), 0o644))
	_, err = loadSound(file)
	assert.True(t, errors.Is(err, ErrSoundLoad))
}

func TestSquareWave(t *testing.T) {
	p := squareWave(1000, 8000, 0.5)
	assert.Equal(t, 8000, p.sampleRate)
	assert.Len(t, p.data, 4000)

	// 8 samples per period, high then low
	assert.Equal(t, float32(0.25), p.data[0])
	assert.Equal(t, float32(0.25), p.data[3])
	assert.Equal(t, float32(-0.25), p.data[4])
	assert.Equal(t, float32(-0.25), p.data[7])
	assert.Equal(t, float32(0.25), p.data[8])
}

func TestResample(t *testing.T) {
	p := pcm{sampleRate: 4, data: []float32{0, 1, 2, 3}}

	up := p.resample(8)
	assert.Equal(t, 8, up.sampleRate)
	assert.Equal(t, []float32{0, 0, 1, 1, 2, 2, 3, 3}, up.data)

	down := p.resample(2)
	assert.Equal(t, []float32{0, 2}, down.data)

	same := p.resample(4)
	assert.Equal(t, p.data, same.data)
}

func TestEncodeF32(t *testing.T) {
	p := pcm{data: []float32{1, -0.5}}

	buf := p.encodeF32()
	assert.Len(t, buf, 8)
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf)))
	assert.Equal(t, float32(-0.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])))
}
