// Package cpu provides the CHIP-8 decode/execute engine. It
// owns the register file, the call stack and all opcode
// semantics, including the variant-dependent quirks.
package cpu

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/thelolagemann/go-chip8/internal/joypad"
	"github.com/thelolagemann/go-chip8/internal/memory"
	"github.com/thelolagemann/go-chip8/internal/ppu"
	"github.com/thelolagemann/go-chip8/internal/timer"
	"github.com/thelolagemann/go-chip8/internal/types"
	"github.com/thelolagemann/go-chip8/pkg/log"
)

// flagRegister is the register overloaded as the carry, borrow
// and collision flag.
const flagRegister = 0xF

// CPU represents the CHIP-8 execution engine. It is responsible
// for fetching, decoding and executing instructions against the
// shared machine state.
type CPU struct {
	// V contains the 16 general purpose registers. V[0xF]
	// doubles as the carry/borrow/collision flag.
	V [16]uint8
	// I is the address register.
	I uint16
	// PC is the program counter, it points to the next
	// instruction to be executed.
	PC uint16

	variant types.Variant
	stack   stack
	rand    *rand.Rand

	mem   *memory.Memory
	ppu   *ppu.PPU
	timer *timer.Controller
	pad   *joypad.State

	// Debug enables a per-instruction disassembly trace on the
	// attached logger.
	Debug bool
	log   log.Logger
}

// NewCPU creates a new CPU attached to the given machine state.
// The PRNG backing the random instruction is seeded from the
// wall clock.
func NewCPU(mem *memory.Memory, p *ppu.PPU, t *timer.Controller, pad *joypad.State, variant types.Variant, logger log.Logger) *CPU {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &CPU{
		PC:      memory.ProgramStart,
		variant: variant,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		mem:     mem,
		ppu:     p,
		timer:   t,
		pad:     pad,
		log:     logger,
	}
}

// Step performs one fetch-decode-execute step. Decode and
// execute failures are returned annotated with the program
// counter of the faulting instruction.
func (c *CPU) Step() error {
	pc := c.PC
	opcode, err := c.mem.ReadWord(pc)
	if err != nil {
		return fmt.Errorf("fetch at 0x%04X: %w", pc, err)
	}
	c.PC += 2

	ins, err := Decode(opcode)
	if err != nil {
		return fmt.Errorf("pc 0x%04X: %w", pc, err)
	}

	if c.Debug {
		c.log.Debugf("0x%04X: %04X %s", pc, opcode, mnemonic(opcode))
	}

	if err := c.execute(ins); err != nil {
		return fmt.Errorf("pc 0x%04X: %w", pc, err)
	}

	return nil
}

// StackDepth returns the number of return addresses currently
// on the call stack.
func (c *CPU) StackDepth() int {
	return c.stack.depth()
}
