package cpu

// Kind identifies a decoded instruction. The names follow the
// conventional CHIP-8 mnemonics.
type Kind uint8

const (
	Sys     Kind = iota // 0nnn - ignored
	Cls                 // 00E0 - clear display
	Ret                 // 00EE - return from subroutine
	Jp                  // 1nnn - jump
	Call                // 2nnn - call subroutine
	SeByte              // 3xnn - skip if Vx == nn
	SneByte             // 4xnn - skip if Vx != nn
	SeReg               // 5xy0 - skip if Vx == Vy
	LdByte              // 6xnn - Vx = nn
	AddByte             // 7xnn - Vx += nn, no flag
	LdReg               // 8xy0 - Vx = Vy
	Or                  // 8xy1 - Vx |= Vy
	And                 // 8xy2 - Vx &= Vy
	Xor                 // 8xy3 - Vx ^= Vy
	AddReg              // 8xy4 - Vx += Vy, VF = carry
	Sub                 // 8xy5 - Vx -= Vy, VF = no borrow
	Shr                 // 8xy6 - shift right, VF = shifted-out bit
	Subn                // 8xy7 - Vx = Vy - Vx, VF = no borrow
	Shl                 // 8xyE - shift left, VF = shifted-out bit
	SneReg              // 9xy0 - skip if Vx != Vy
	LdI                 // Annn - I = nnn
	JpV0                // Bnnn - jump to nnn + V0
	Rnd                 // Cxnn - Vx = rand & nn
	Drw                 // Dxyn - draw n-row sprite at (Vx, Vy)
	Skp                 // Ex9E - skip if key Vx pressed
	Sknp                // ExA1 - skip if key Vx not pressed
	LdFromDelay         // Fx07 - Vx = delay timer
	LdKey               // Fx0A - wait for key press
	LdDelay             // Fx15 - delay timer = Vx
	LdSound             // Fx18 - sound timer = Vx
	AddI                // Fx1E - I += Vx
	LdFont              // Fx29 - I = font sprite address of Vx
	LdBCD               // Fx33 - memory[I..I+2] = BCD of Vx
	LdMemRegs           // Fx55 - dump V0..Vx to memory at I
	LdRegsMem           // Fx65 - load V0..Vx from memory at I
)

// Instruction is a decoded opcode. The operand accessors
// extract the conventional x/y/n/nn/nnn fields from the raw
// opcode word.
type Instruction struct {
	Kind   Kind
	Opcode uint16
}

// X returns the register index in bits 8-11.
func (i Instruction) X() uint8 {
	return uint8(i.Opcode >> 8 & 0xF)
}

// Y returns the register index in bits 4-7.
func (i Instruction) Y() uint8 {
	return uint8(i.Opcode >> 4 & 0xF)
}

// N returns the 4-bit immediate in bits 0-3.
func (i Instruction) N() uint8 {
	return uint8(i.Opcode & 0xF)
}

// NN returns the 8-bit immediate in the low byte.
func (i Instruction) NN() uint8 {
	return uint8(i.Opcode)
}

// NNN returns the 12-bit address in the low 12 bits.
func (i Instruction) NNN() uint16 {
	return i.Opcode & 0xFFF
}
