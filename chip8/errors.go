package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned for any RAM access outside of 0x000-0xFFF.
	ErrOutOfRange = errors.New("out of range")

	// ErrStackOverflow is returned when calling with 16 return addresses
	// already on the stack.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned when returning with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrUnknownOpcode is returned for an instruction the VM cannot decode.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrFileNotFound is returned when a ROM file cannot be opened.
	ErrFileNotFound = errors.New("file not found")

	// ErrNotLoaded is returned when running a VM without a program.
	ErrNotLoaded = errors.New("no program loaded")

	// ErrRunning is returned when loading a program into a running VM.
	ErrRunning = errors.New("virtual machine running")

	// ErrHalted is returned when running or loading a VM that has halted.
	ErrHalted = errors.New("virtual machine halted")
)

// ExecError is an error raised while executing an instruction. It wraps
// one of the sentinel errors above.
type ExecError struct {
	PC     uint16
	Opcode Opcode
	Err    error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%04X - %04X: %v", e.PC, e.Opcode.Raw, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
