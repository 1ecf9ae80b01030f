package chip8

// Opcode is a single fetched instruction split into its operand fields.
type Opcode struct {
	Raw uint16

	// Category is the instruction family, bits 15-12.
	Category byte

	// X and Y are register operands, bits 11-8 and 7-4.
	X byte
	Y byte

	// N is a nibble literal, NN a byte literal and NNN an address.
	N   byte
	NN  byte
	NNN uint16
}

// Decode splits an instruction word into an Opcode.
func Decode(inst uint16) Opcode {
	return Opcode{
		Raw:      inst,
		Category: byte(inst >> 12 & 0xF),
		X:        byte(inst >> 8 & 0xF),
		Y:        byte(inst >> 4 & 0xF),
		N:        byte(inst & 0xF),
		NN:       byte(inst & 0xFF),
		NNN:      inst & 0xFFF,
	}
}
