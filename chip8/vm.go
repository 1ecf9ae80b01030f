/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package chip8

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// State is the execution state of the VM.
type State int32

const (
	// Uninitialized is a VM without a program.
	Uninitialized State = iota

	// Loaded is a VM with a program in memory, ready to run.
	Loaded

	// Running is a VM executing instructions.
	Running

	// AwaitingKey is a running VM blocked in FX0A.
	AwaitingKey

	// Halted is a VM that has stopped for good.
	Halted
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loaded:
		return "loaded"
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	case Halted:
		return "halted"
	}

	return fmt.Sprintf("state(%d)", int32(s))
}

const (
	// DefaultCyclesPerFrame is the "normal" speed: 600 instructions per
	// second at 60 frames per second.
	DefaultCyclesPerFrame = 10

	// DefaultHistoryDepth is the number of instructions kept for logging
	// when the VM halts on an error.
	DefaultHistoryDepth = 16
)

// Config holds the settings and collaborators of a VM.
type Config struct {
	// CyclesPerFrame is the number of instructions executed per frame tick.
	CyclesPerFrame uint

	// Audio plays the beep. Nil is silent.
	Audio Audio

	// Keyboard is polled once per frame. Nil has no keys down.
	Keyboard Keyboard

	// Logger defaults to the default retrogolib logger.
	Logger *log.Logger

	// Seed for CXNN. Zero seeds from the clock.
	Seed int64

	// Trace logs every executed instruction at debug level.
	Trace bool

	// HistoryDepth is how many instructions are logged on failure.
	HistoryDepth int
}

// VM is the SuperChip-8 virtual machine.
//
// RAM and the registers belong to the goroutine executing instructions
// (Run or Step). The frame tick (VBlank) only touches the timers, keypad
// and display, which are safe for concurrent use.
type VM struct {
	// RAM is the 4K of addressable memory.
	RAM RAM

	Registers

	display Display
	keypad  Keypad

	audio    Audio
	keyboard Keyboard
	logger   *log.Logger
	rng      *rand.Rand

	// shared run-state
	state    atomic.Int32
	running  atomic.Bool
	stopping atomic.Bool
	loaded   atomic.Bool
	cycles   atomic.Uint32
	target   atomic.Uint32
	frames   atomic.Uint64

	// tick is signalled once per frame, quit is closed by Stop
	tick     chan struct{}
	quit     chan struct{}
	stopOnce sync.Once

	// wait is the pending FX0A, owned by the CPU goroutine
	wait keyWait

	trace   bool
	history *History

	// audioWarned is owned by the frame tick
	audioWarned bool
}

// keyWait tracks an FX0A: first a key has to go down, then come up.
type keyWait struct {
	reg     byte
	key     byte
	pressed bool
	resume  State
}

// New creates a VM with the fonts loaded and no program.
func New(cfg Config) *VM {
	vm := &VM{
		audio:    cfg.Audio,
		keyboard: cfg.Keyboard,
		logger:   cfg.Logger,
		trace:    cfg.Trace,
		tick:     make(chan struct{}, 1),
		quit:     make(chan struct{}),
	}

	if vm.audio == nil {
		vm.audio = noAudio{}
	}
	if vm.keyboard == nil {
		vm.keyboard = noKeyboard{}
	}
	if vm.logger == nil {
		vm.logger = log.NewWithConfig(log.DefaultConfig())
	}

	depth := cfg.HistoryDepth
	if depth <= 0 {
		depth = DefaultHistoryDepth
	}
	vm.history = NewHistory(depth)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	vm.rng = rand.New(rand.NewSource(seed))

	cycles := cfg.CyclesPerFrame
	if cycles == 0 {
		cycles = DefaultCyclesPerFrame
	}
	vm.SetCyclesPerFrame(cycles)

	// initialize memory and fonts
	vm.Registers.Clear()
	vm.RAM.Clear()

	// the fonts always fit
	_ = vm.RAM.LoadFonts()

	return vm
}

// LoadProgram copies a program into memory at 0x200 and resets the
// registers and display.
func (vm *VM) LoadProgram(program []byte) error {
	switch vm.State() {
	case Running, AwaitingKey:
		return ErrRunning
	case Halted:
		return ErrHalted
	}

	vm.RAM.ClearProgram()

	if err := vm.RAM.Load(program, ProgramStart); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	vm.Registers.Clear()
	vm.history.Reset()
	vm.display.Clear()
	vm.display.SetResolution(LowRes)
	vm.display.Swap()

	vm.loaded.Store(true)
	vm.state.Store(int32(Loaded))

	vm.logger.Debug("Program loaded", log.Int("size", len(program)))

	return nil
}

// LoadFile reads a ROM file and loads it.
func (vm *VM) LoadFile(file string) error {
	program, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	return vm.LoadProgram(program)
}

// Run executes the loaded program until it exits, fails, the context is
// cancelled or Stop is called. It blocks once per frame after executing
// the cycle budget, so VBlank must be called by the presentation loop.
func (vm *VM) Run(ctx context.Context) error {
	if !vm.state.CompareAndSwap(int32(Loaded), int32(Running)) {
		switch vm.State() {
		case Halted:
			return ErrHalted
		case Uninitialized:
			return ErrNotLoaded
		}

		return ErrRunning
	}

	vm.running.Store(true)

	// honor a Stop that raced with starting
	if vm.stopping.Load() {
		vm.running.Store(false)
	}

	stop := context.AfterFunc(ctx, vm.Stop)
	defer stop()
	defer vm.halt()

	vm.logger.Debug("Running", log.Int("cycles_per_frame", int(vm.target.Load())))

	for vm.running.Load() {
		if vm.State() == AwaitingKey && !vm.waitFrame() {
			break
		}

		if err := vm.Step(); err != nil {
			vm.fail(err)

			return err
		}

		vm.throttle()
	}

	return nil
}

// Stop requests the VM to halt. It wakes the CPU goroutine if it is
// waiting for a frame or a key. Safe to call more than once.
func (vm *VM) Stop() {
	vm.stopping.Store(true)
	vm.running.Store(false)

	vm.stopOnce.Do(func() {
		close(vm.quit)
	})

	// a VM that never ran halts immediately
	vm.state.CompareAndSwap(int32(Uninitialized), int32(Halted))
	vm.state.CompareAndSwap(int32(Loaded), int32(Halted))
}

// State returns the current execution state.
func (vm *VM) State() State {
	return State(vm.state.Load())
}

// IsRunning is false once the VM has been asked to stop or has exited.
func (vm *VM) IsRunning() bool {
	return vm.running.Load()
}

// IsLoaded is true once a program has been loaded.
func (vm *VM) IsLoaded() bool {
	return vm.loaded.Load()
}

// Display returns the double-buffered screen.
func (vm *VM) Display() *Display {
	return &vm.display
}

// Keypad returns the key snapshot read by the CPU.
func (vm *VM) Keypad() *Keypad {
	return &vm.keypad
}

// History returns the recently executed instructions. Only read it from
// the CPU goroutine or after Run has returned.
func (vm *VM) History() *History {
	return vm.history
}

// Cycles returns the number of instructions executed this frame.
func (vm *VM) Cycles() uint {
	return uint(vm.cycles.Load())
}

// Frames returns the number of frame ticks seen.
func (vm *VM) Frames() uint64 {
	return vm.frames.Load()
}

// CyclesPerFrame returns the per-frame instruction budget.
func (vm *VM) CyclesPerFrame() uint {
	return uint(vm.target.Load())
}

// SetCyclesPerFrame changes the per-frame instruction budget. It takes
// effect immediately, even mid-frame.
func (vm *VM) SetCyclesPerFrame(n uint) {
	if n < 1 {
		n = 1
	}

	vm.target.Store(uint32(n))
}

// IncSpeed raises the budget by roughly 10%.
func (vm *VM) IncSpeed() uint {
	n := vm.CyclesPerFrame()
	n += max(1, n/10)

	vm.SetCyclesPerFrame(n)

	return vm.CyclesPerFrame()
}

// DecSpeed lowers the budget by roughly 10%, never below 1.
func (vm *VM) DecSpeed() uint {
	n := vm.CyclesPerFrame()
	if n > 1 {
		n -= max(1, n/10)
	}

	vm.SetCyclesPerFrame(n)

	return vm.CyclesPerFrame()
}

// Step executes a single instruction. While waiting on FX0A it only
// checks the keypad. A halted VM never executes again.
func (vm *VM) Step() error {
	switch {
	case vm.State() == Halted:
		return ErrHalted
	case !vm.IsLoaded():
		return ErrNotLoaded
	case vm.State() == AwaitingKey:
		vm.pollKey()

		return nil
	}

	pc := vm.PC

	// fetch the next instruction
	inst, err := vm.RAM.ReadWord(pc)
	if err != nil {
		return &ExecError{PC: pc, Err: err}
	}

	// instructions are 2 bytes
	vm.PC += 2

	op := Decode(inst)
	vm.history.Add(pc, op)

	if vm.trace {
		vm.logger.Debug("Step", log.Hex("pc", pc), log.String("inst", op.String()))
	}

	if err := vm.execute(op); err != nil {
		return &ExecError{PC: pc, Opcode: op, Err: err}
	}

	vm.cycles.Add(1)

	return nil
}

// throttle blocks once the frame budget is spent until the next tick.
func (vm *VM) throttle() {
	for vm.running.Load() && vm.cycles.Load() >= vm.target.Load() {
		if !vm.waitFrame() {
			return
		}
	}
}

// waitFrame blocks until the next frame tick. Returns false on Stop.
func (vm *VM) waitFrame() bool {
	select {
	case <-vm.tick:
		return true
	case <-vm.quit:
		return false
	}
}

// pollKey advances a pending FX0A from the keypad snapshot.
func (vm *VM) pollKey() {
	if !vm.wait.pressed {
		if key, ok := vm.keypad.FirstDown(); ok {
			vm.wait.key = key
			vm.wait.pressed = true
		}

		return
	}

	// wait for the key to be released
	if vm.keypad.IsDown(vm.wait.key) {
		return
	}

	vm.V[vm.wait.reg] = vm.wait.key
	resume := vm.wait.resume
	vm.wait = keyWait{}
	vm.state.CompareAndSwap(int32(AwaitingKey), int32(resume))
}

// awaitKey puts the VM into the FX0A wait state.
func (vm *VM) awaitKey(x byte) {
	vm.wait = keyWait{reg: x, resume: vm.State()}
	vm.state.Store(int32(AwaitingKey))
}

func (vm *VM) halt() {
	vm.running.Store(false)
	vm.state.Store(int32(Halted))

	// don't leave the beep stuck on
	if err := vm.audio.StopSound(Beep); err != nil {
		vm.logger.Warn("Stopping sound failed", log.Err(err))
	}

	vm.logger.Debug("Halted")
}

func (vm *VM) fail(err error) {
	vm.logger.Error("Virtual machine halted", log.Err(err))

	for _, t := range vm.history.Window(vm.history.Len()) {
		vm.logger.Error("Trace", log.String("inst", t.String()))
	}

	var execErr *ExecError
	if errors.As(err, &execErr) {
		for _, line := range vm.codeAround(execErr.PC) {
			vm.logger.Error("Code", log.String("inst", line))
		}
	}

	vm.logRegisters()
}

// codeAround disassembles the instructions around address, marking the
// one at address.
func (vm *VM) codeAround(address uint16) []string {
	var lines []string

	start := max(int(address)-4, ProgramStart)

	for addr := start; addr <= int(address)+4 && addr < RAMSize; addr += 2 {
		line := vm.Disassemble(uint16(addr))
		if line == "" {
			break
		}

		if addr == int(address) {
			line += "  <--"
		}

		lines = append(lines, line)
	}

	return lines
}

func (vm *VM) logRegisters() {
	vm.logger.Error("Registers",
		log.Hex("pc", vm.PC),
		log.Hex("i", vm.I),
		log.Int("sp", int(vm.SP)),
		log.String("v", fmt.Sprintf("% X", vm.V[:])))
}
