package cpu

import "github.com/retroenv/retrogolib/arch/cpu/chip8"

// mnemonic returns the conventional assembler name for an
// opcode by matching it against the CHIP-8 opcode tables. Used
// for the debug trace only; execution dispatch goes through
// Decode.
func mnemonic(opcode uint16) string {
	for _, op := range chip8.Opcodes[int(opcode>>12)] {
		if op.Info.Mask&opcode == op.Info.Value {
			return op.Instruction.Name
		}
	}
	return "???"
}
