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
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// execute dispatches a decoded instruction.
func (vm *VM) execute(op Opcode) error {
	switch op.Category {
	case 0x0:
		return vm.execute0(op)
	case 0x1:
		vm.jump(op.NNN)
	case 0x2:
		return vm.call(op.NNN)
	case 0x3:
		vm.skipIf(vm.V[op.X] == op.NN)
	case 0x4:
		vm.skipIf(vm.V[op.X] != op.NN)
	case 0x5:
		vm.skipIf(vm.V[op.X] == vm.V[op.Y])
	case 0x6:
		vm.V[op.X] = op.NN
	case 0x7:
		vm.V[op.X] += op.NN
	case 0x8:
		return vm.execute8(op)
	case 0x9:
		vm.skipIf(vm.V[op.X] != vm.V[op.Y])
	case 0xA:
		vm.I = op.NNN
	case 0xB:
		vm.jumpVX(op.X, op.NNN)
	case 0xC:
		vm.rnd(op.X, op.NN)
	case 0xD:
		return vm.drw(op.X, op.Y, op.N)
	case 0xE:
		return vm.executeE(op)
	case 0xF:
		return vm.executeF(op)
	}

	return nil
}

func (vm *VM) execute0(op Opcode) error {
	if op.Y == 0xC {
		vm.display.ScrollDown(int(op.N))

		return nil
	}

	switch op.NN {
	case 0xE0:
		vm.display.Clear()
	case 0xEE:
		return vm.ret()
	case 0xFB:
		vm.display.ScrollRight(4)
	case 0xFC:
		vm.display.ScrollLeft(4)
	case 0xFD:
		vm.exit()
	case 0xFE:
		vm.display.SetResolution(LowRes)
	case 0xFF:
		vm.display.SetResolution(HighRes)
	default:
		return unknown(op)
	}

	return nil
}

func (vm *VM) execute8(op Opcode) error {
	x, y := op.X, op.Y

	switch op.N {
	case 0x0:
		vm.V[x] = vm.V[y]
	case 0x1:
		vm.V[x] |= vm.V[y]
	case 0x2:
		vm.V[x] &= vm.V[y]
	case 0x3:
		vm.V[x] ^= vm.V[y]
	case 0x4:
		vm.addXY(x, y)
	case 0x5:
		vm.subXY(x, y)
	case 0x6:
		vm.shr(x)
	case 0x7:
		vm.subYX(x, y)
	case 0xE:
		vm.shl(x)
	default:
		return unknown(op)
	}

	return nil
}

func (vm *VM) executeE(op Opcode) error {
	switch op.NN {
	case 0x9E:
		vm.skipIf(vm.keypad.IsDown(vm.V[op.X]))
	case 0xA1:
		vm.skipIf(!vm.keypad.IsDown(vm.V[op.X]))
	default:
		return unknown(op)
	}

	return nil
}

func (vm *VM) executeF(op Opcode) error {
	x := op.X

	switch op.NN {
	case 0x07:
		vm.V[x] = vm.DT.Load()
	case 0x0A:
		vm.awaitKey(x)
	case 0x15:
		vm.DT.Store(vm.V[x])
	case 0x18:
		vm.ST.Store(vm.V[x])
	case 0x1E:
		vm.I += uint16(vm.V[x])
	case 0x29:
		vm.I = uint16(LowResFontAddress + int(vm.V[x]%16)*LowResGlyphHeight)
	case 0x30:
		vm.I = uint16(HighResFontAddress + int(vm.V[x]%16)*HighResGlyphHeight)
	case 0x33:
		return vm.bcd(x)
	case 0x55:
		return vm.saveRegs(x)
	case 0x65:
		return vm.loadRegs(x)
	case 0x75:
		copy(vm.RPL[:x+1], vm.V[:x+1])
	case 0x85:
		copy(vm.V[:x+1], vm.RPL[:x+1])
	default:
		return unknown(op)
	}

	return nil
}

func unknown(op Opcode) error {
	return fmt.Errorf("%w: %04X", ErrUnknownOpcode, op.Raw)
}

// skip the next instruction if cond is true.
func (vm *VM) skipIf(cond bool) {
	if cond {
		vm.PC += 2
	}
}

// jump to address.
func (vm *VM) jump(address uint16) {
	vm.PC = address
}

// jump to address + vx.
func (vm *VM) jumpVX(x byte, address uint16) {
	vm.PC = address + uint16(vm.V[x])
}

// call a subroutine at address.
func (vm *VM) call(address uint16) error {
	if err := vm.Push(vm.PC); err != nil {
		return err
	}

	vm.PC = address

	return nil
}

// return from subroutine.
func (vm *VM) ret() error {
	pc, err := vm.Pop()
	if err != nil {
		return err
	}

	vm.PC = pc

	return nil
}

// exit the interpreter.
func (vm *VM) exit() {
	vm.running.Store(false)
	vm.logger.Debug("Program exited", log.Hex("pc", vm.PC-2))
}

// add vy to vx, carry into vf.
func (vm *VM) addXY(x, y byte) {
	sum := uint16(vm.V[x]) + uint16(vm.V[y])

	vm.V[x] = byte(sum)
	vm.V[0xF] = byte(sum >> 8)
}

// subtract vy from vx, vf is set if there was no borrow.
func (vm *VM) subXY(x, y byte) {
	var flag byte
	if vm.V[x] >= vm.V[y] {
		flag = 1
	}

	vm.V[x] -= vm.V[y]
	vm.V[0xF] = flag
}

// subtract vx from vy and store in vx, vf is set if there was no borrow.
func (vm *VM) subYX(x, y byte) {
	var flag byte
	if vm.V[y] >= vm.V[x] {
		flag = 1
	}

	vm.V[x] = vm.V[y] - vm.V[x]
	vm.V[0xF] = flag
}

// shr vx 1 bit, vf is the LSB of vx before the shift.
func (vm *VM) shr(x byte) {
	lsb := vm.V[x] & 1

	vm.V[x] >>= 1
	vm.V[0xF] = lsb
}

// shl vx 1 bit, vf is the MSB of vx before the shift.
func (vm *VM) shl(x byte) {
	msb := vm.V[x] >> 7

	vm.V[x] <<= 1
	vm.V[0xF] = msb
}

// load a random number & nn into vx.
func (vm *VM) rnd(x, b byte) {
	vm.V[x] = byte(vm.rng.Intn(256)) & b
}

// draw a sprite at I to the back buffer at vx, vy.
func (vm *VM) drw(x, y, n byte) error {
	sprite := Sprite{Height: int(n), Width: 8}

	// DXY0 is a 16x16 sprite
	if n == 0 {
		sprite.Height = 16
		sprite.Width = 16
	}

	// the whole sprite must be in memory before anything is drawn
	data, err := vm.RAM.Slice(vm.I, sprite.Size())
	if err != nil {
		return err
	}
	sprite.Data = data

	if vm.display.AddSprite(sprite, vm.V[x], vm.V[y]) {
		vm.V[0xF] = 1
	} else {
		vm.V[0xF] = 0
	}

	return nil
}

// store the BCD of vx at I, I+1 and I+2.
func (vm *VM) bcd(x byte) error {
	if !vm.RAM.IsReadable(vm.I, 3) {
		return fmt.Errorf("%w: BCD at #%04X", ErrOutOfRange, vm.I)
	}

	n := vm.V[x]

	_ = vm.RAM.Poke(vm.I+0, n/100)
	_ = vm.RAM.Poke(vm.I+1, n/10%10)
	_ = vm.RAM.Poke(vm.I+2, n%10)

	return nil
}

// save registers v0..vx to I.
func (vm *VM) saveRegs(x byte) error {
	if !vm.RAM.IsReadable(vm.I, int(x)+1) {
		return fmt.Errorf("%w: store V0-V%X at #%04X", ErrOutOfRange, x, vm.I)
	}

	for i := byte(0); i <= x; i++ {
		_ = vm.RAM.Poke(vm.I+uint16(i), vm.V[i])
	}

	return nil
}

// load registers v0..vx from I.
func (vm *VM) loadRegs(x byte) error {
	data, err := vm.RAM.Slice(vm.I, int(x)+1)
	if err != nil {
		return err
	}

	copy(vm.V[:x+1], data)

	return nil
}
