package cpu

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/go-chip8/internal/memory"
	"github.com/thelolagemann/go-chip8/internal/types"
)

// ErrUnimplemented is returned for an instruction that decoded
// but has no execution behaviour.
var ErrUnimplemented = errors.New("unimplemented instruction")

// execute applies a decoded instruction to the machine state.
// Instructions that read VF as an operand and also write it as
// a flag read their operands into locals before the flag write.
func (c *CPU) execute(ins Instruction) error {
	switch ins.Kind {
	case Sys:
		// no-op

	case Cls:
		c.ppu.Clear()

	case Ret:
		addr, err := c.stack.pop()
		if err != nil {
			return err
		}
		c.PC = addr

	case Jp:
		c.PC = ins.NNN()

	case Call:
		if err := c.stack.push(c.PC); err != nil {
			return err
		}
		c.PC = ins.NNN()

	case SeByte:
		if c.V[ins.X()] == ins.NN() {
			c.PC += 2
		}

	case SneByte:
		if c.V[ins.X()] != ins.NN() {
			c.PC += 2
		}

	case SeReg:
		if c.V[ins.X()] == c.V[ins.Y()] {
			c.PC += 2
		}

	case SneReg:
		if c.V[ins.X()] != c.V[ins.Y()] {
			c.PC += 2
		}

	case LdByte:
		c.V[ins.X()] = ins.NN()

	case AddByte:
		// wraps, no flag
		c.V[ins.X()] += ins.NN()

	case LdReg:
		c.V[ins.X()] = c.V[ins.Y()]

	case Or:
		c.V[ins.X()] |= c.V[ins.Y()]
		c.logicQuirk()

	case And:
		c.V[ins.X()] &= c.V[ins.Y()]
		c.logicQuirk()

	case Xor:
		c.V[ins.X()] ^= c.V[ins.Y()]
		c.logicQuirk()

	case AddReg:
		vx, vy := c.V[ins.X()], c.V[ins.Y()]
		sum := uint16(vx) + uint16(vy)
		c.V[ins.X()] = uint8(sum)
		c.setFlag(sum > 0xFF)

	case Sub:
		vx, vy := c.V[ins.X()], c.V[ins.Y()]
		c.V[ins.X()] = vx - vy
		c.setFlag(vx >= vy)

	case Subn:
		vx, vy := c.V[ins.X()], c.V[ins.Y()]
		c.V[ins.X()] = vy - vx
		c.setFlag(vy >= vx)

	case Shr:
		src := c.shiftSource(ins)
		c.V[ins.X()] = src >> 1
		c.setFlag(src&0x01 != 0)

	case Shl:
		src := c.shiftSource(ins)
		c.V[ins.X()] = src << 1
		c.setFlag(src&0x80 != 0)

	case LdI:
		c.I = ins.NNN()

	case JpV0:
		c.PC = ins.NNN() + uint16(c.V[0])

	case Rnd:
		c.V[ins.X()] = uint8(c.rand.Intn(256)) & ins.NN()

	case Drw:
		return c.draw(ins)

	case Skp:
		if c.pad.Pressed(c.V[ins.X()]) {
			c.PC += 2
		}

	case Sknp:
		if !c.pad.Pressed(c.V[ins.X()]) {
			c.PC += 2
		}

	case LdFromDelay:
		c.V[ins.X()] = c.timer.Delay()

	case LdDelay:
		c.timer.SetDelay(c.V[ins.X()])

	case LdSound:
		c.timer.SetSound(c.V[ins.X()])

	case LdKey:
		if key, ok := c.pad.FirstPressed(); ok {
			c.V[ins.X()] = key
		} else {
			// busy-wait: re-fetch this instruction next cycle
			c.PC -= 2
		}

	case AddI:
		c.I += uint16(c.V[ins.X()])

	case LdFont:
		c.I = memory.FontAddress(c.V[ins.X()])

	case LdBCD:
		v := c.V[ins.X()]
		digits := [3]uint8{v / 100, v / 10 % 10, v % 10}
		for i, d := range digits {
			if err := c.mem.Write(c.I+uint16(i), d); err != nil {
				return err
			}
		}

	case LdMemRegs:
		x := ins.X()
		for i := uint8(0); i <= x; i++ {
			if err := c.mem.Write(c.I+uint16(i), c.V[i]); err != nil {
				return err
			}
		}
		if c.variant == types.CHIP8 {
			c.I += uint16(x) + 1
		}

	case LdRegsMem:
		x := ins.X()
		for i := uint8(0); i <= x; i++ {
			v, err := c.mem.Read(c.I + uint16(i))
			if err != nil {
				return err
			}
			c.V[i] = v
		}
		if c.variant == types.CHIP8 {
			c.I += uint16(x) + 1
		}

	default:
		return fmt.Errorf("%w: opcode 0x%04X", ErrUnimplemented, ins.Opcode)
	}

	return nil
}

// draw reads an N-row sprite from memory at I and XOR-composites
// it onto the display at (Vx, Vy), recording any collision in VF.
func (c *CPU) draw(ins Instruction) error {
	height := uint16(ins.N())
	sprite := make([]byte, 0, height)
	for row := uint16(0); row < height; row++ {
		b, err := c.mem.Read(c.I + row)
		if err != nil {
			return err
		}
		sprite = append(sprite, b)
	}

	c.setFlag(c.ppu.Draw(sprite, c.V[ins.X()], c.V[ins.Y()]))
	return nil
}

// logicQuirk applies the baseline CHIP-8 side effect of the
// bitwise instructions, which force VF to zero. SUPER-CHIP
// leaves VF untouched.
func (c *CPU) logicQuirk() {
	if c.variant == types.CHIP8 {
		c.V[flagRegister] = 0
	}
}

// shiftSource returns the register value a shift operates on.
// On baseline CHIP-8 the shift reads Vy and stores into Vx; on
// SUPER-CHIP it reads and stores Vx.
func (c *CPU) shiftSource(ins Instruction) uint8 {
	if c.variant == types.CHIP8 {
		return c.V[ins.Y()]
	}
	return c.V[ins.X()]
}

func (c *CPU) setFlag(set bool) {
	if set {
		c.V[flagRegister] = 1
	} else {
		c.V[flagRegister] = 0
	}
}
