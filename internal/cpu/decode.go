package cpu

import "fmt"

// UnknownOpcodeError is returned when an opcode cannot be
// classified. It carries the raw opcode for diagnostics.
type UnknownOpcodeError struct {
	Opcode uint16
}

func (e UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode 0x%04X", e.Opcode)
}

// Decode maps a 16-bit opcode to an Instruction. Dispatch is by
// the high nibble, with the 0x0, 0x8, 0xE and 0xF families
// further dispatched on their sub-nibbles. Anything that does
// not match a known encoding fails with UnknownOpcodeError.
func Decode(opcode uint16) (Instruction, error) {
	ins := Instruction{Opcode: opcode}

	switch opcode >> 12 {
	case 0x0:
		switch uint8(opcode) {
		case 0xE0:
			ins.Kind = Cls
		case 0xEE:
			ins.Kind = Ret
		case 0x00:
			// machine code routine entry points, ignored
			ins.Kind = Sys
		default:
			return Instruction{}, UnknownOpcodeError{Opcode: opcode}
		}
	case 0x1:
		ins.Kind = Jp
	case 0x2:
		ins.Kind = Call
	case 0x3:
		ins.Kind = SeByte
	case 0x4:
		ins.Kind = SneByte
	case 0x5:
		if opcode&0xF != 0 {
			return Instruction{}, UnknownOpcodeError{Opcode: opcode}
		}
		ins.Kind = SeReg
	case 0x6:
		ins.Kind = LdByte
	case 0x7:
		ins.Kind = AddByte
	case 0x8:
		switch opcode & 0xF {
		case 0x0:
			ins.Kind = LdReg
		case 0x1:
			ins.Kind = Or
		case 0x2:
			ins.Kind = And
		case 0x3:
			ins.Kind = Xor
		case 0x4:
			ins.Kind = AddReg
		case 0x5:
			ins.Kind = Sub
		case 0x6:
			ins.Kind = Shr
		case 0x7:
			ins.Kind = Subn
		case 0xE:
			ins.Kind = Shl
		default:
			return Instruction{}, UnknownOpcodeError{Opcode: opcode}
		}
	case 0x9:
		if opcode&0xF != 0 {
			return Instruction{}, UnknownOpcodeError{Opcode: opcode}
		}
		ins.Kind = SneReg
	case 0xA:
		ins.Kind = LdI
	case 0xB:
		ins.Kind = JpV0
	case 0xC:
		ins.Kind = Rnd
	case 0xD:
		ins.Kind = Drw
	case 0xE:
		switch uint8(opcode) {
		case 0x9E:
			ins.Kind = Skp
		case 0xA1:
			ins.Kind = Sknp
		default:
			return Instruction{}, UnknownOpcodeError{Opcode: opcode}
		}
	case 0xF:
		switch uint8(opcode) {
		case 0x07:
			ins.Kind = LdFromDelay
		case 0x0A:
			ins.Kind = LdKey
		case 0x15:
			ins.Kind = LdDelay
		case 0x18:
			ins.Kind = LdSound
		case 0x1E:
			ins.Kind = AddI
		case 0x29:
			ins.Kind = LdFont
		case 0x33:
			ins.Kind = LdBCD
		case 0x55:
			ins.Kind = LdMemRegs
		case 0x65:
			ins.Kind = LdRegsMem
		default:
			return Instruction{}, UnknownOpcodeError{Opcode: opcode}
		}
	}

	return ins, nil
}
