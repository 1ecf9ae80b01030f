package chip8

// Sound identifies a sound effect the VM can ask for.
type Sound int

const (
	// Beep plays while the sound timer is non-zero.
	Beep Sound = iota
)

func (s Sound) String() string {
	switch s {
	case Beep:
		return "beep"
	}

	return "unknown"
}

// Audio plays sound effects for the VM. Failures are never fatal, the VM
// only logs them.
type Audio interface {
	PlaySound(kind Sound) error
	StopSound(kind Sound) error
}

type noAudio struct{}

func (noAudio) PlaySound(Sound) error { return nil }
func (noAudio) StopSound(Sound) error { return nil }
