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

import "fmt"

// String disassembles the opcode. Unknown instructions return "??".
func (op Opcode) String() string {
	x, y := op.X, op.Y

	switch op.Category {
	case 0x0:
		switch {
		case op.Y == 0xC:
			return fmt.Sprintf("SCD    %d", op.N)
		case op.NN == 0xE0:
			return "CLS"
		case op.NN == 0xEE:
			return "RET"
		case op.NN == 0xFB:
			return "SCR"
		case op.NN == 0xFC:
			return "SCL"
		case op.NN == 0xFD:
			return "EXIT"
		case op.NN == 0xFE:
			return "LOW"
		case op.NN == 0xFF:
			return "HIGH"
		}
	case 0x1:
		return fmt.Sprintf("JP     #%04X", op.NNN)
	case 0x2:
		return fmt.Sprintf("CALL   #%04X", op.NNN)
	case 0x3:
		return fmt.Sprintf("SE     V%X, #%02X", x, op.NN)
	case 0x4:
		return fmt.Sprintf("SNE    V%X, #%02X", x, op.NN)
	case 0x5:
		return fmt.Sprintf("SE     V%X, V%X", x, y)
	case 0x6:
		return fmt.Sprintf("LD     V%X, #%02X", x, op.NN)
	case 0x7:
		return fmt.Sprintf("ADD    V%X, #%02X", x, op.NN)
	case 0x8:
		switch op.N {
		case 0x0:
			return fmt.Sprintf("LD     V%X, V%X", x, y)
		case 0x1:
			return fmt.Sprintf("OR     V%X, V%X", x, y)
		case 0x2:
			return fmt.Sprintf("AND    V%X, V%X", x, y)
		case 0x3:
			return fmt.Sprintf("XOR    V%X, V%X", x, y)
		case 0x4:
			return fmt.Sprintf("ADD    V%X, V%X", x, y)
		case 0x5:
			return fmt.Sprintf("SUB    V%X, V%X", x, y)
		case 0x6:
			return fmt.Sprintf("SHR    V%X", x)
		case 0x7:
			return fmt.Sprintf("SUBN   V%X, V%X", x, y)
		case 0xE:
			return fmt.Sprintf("SHL    V%X", x)
		}
	case 0x9:
		return fmt.Sprintf("SNE    V%X, V%X", x, y)
	case 0xA:
		return fmt.Sprintf("LD     I, #%04X", op.NNN)
	case 0xB:
		return fmt.Sprintf("JP     V%X, #%04X", x, op.NNN)
	case 0xC:
		return fmt.Sprintf("RND    V%X, #%02X", x, op.NN)
	case 0xD:
		return fmt.Sprintf("DRW    V%X, V%X, %d", x, y, op.N)
	case 0xE:
		switch op.NN {
		case 0x9E:
			return fmt.Sprintf("SKP    V%X", x)
		case 0xA1:
			return fmt.Sprintf("SKNP   V%X", x)
		}
	case 0xF:
		switch op.NN {
		case 0x07:
			return fmt.Sprintf("LD     V%X, DT", x)
		case 0x0A:
			return fmt.Sprintf("LD     V%X, K", x)
		case 0x15:
			return fmt.Sprintf("LD     DT, V%X", x)
		case 0x18:
			return fmt.Sprintf("LD     ST, V%X", x)
		case 0x1E:
			return fmt.Sprintf("ADD    I, V%X", x)
		case 0x29:
			return fmt.Sprintf("LD     F, V%X", x)
		case 0x30:
			return fmt.Sprintf("LD     HF, V%X", x)
		case 0x33:
			return fmt.Sprintf("LD     B, V%X", x)
		case 0x55:
			return fmt.Sprintf("LD     [I], V%X", x)
		case 0x65:
			return fmt.Sprintf("LD     V%X, [I]", x)
		case 0x75:
			return fmt.Sprintf("LD     R, V%X", x)
		case 0x85:
			return fmt.Sprintf("LD     V%X, R", x)
		}
	}

	return "??"
}

// Disassemble the instruction at address in RAM.
func (vm *VM) Disassemble(address uint16) string {
	inst, err := vm.RAM.ReadWord(address)
	if err != nil {
		return ""
	}

	// end of program memory?
	if inst == 0 {
		return fmt.Sprintf("%04X -", address)
	}

	return fmt.Sprintf("%04X - %s", address, Decode(inst))
}
