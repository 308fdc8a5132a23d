package chip8

import (
	"github.com/thelolagemann/go-chip8/internal/types"
	"github.com/thelolagemann/go-chip8/pkg/log"
)

// Opt configures a CHIP8 during construction.
type Opt func(c *CHIP8)

// AsVariant selects the system variant to emulate. The variant
// changes the semantics of the logic, shift and register block
// instructions.
func AsVariant(v types.Variant) Opt {
	return func(c *CHIP8) {
		c.variant = v
	}
}

// WithLogger attaches a logger to the emulator.
func WithLogger(l log.Logger) Opt {
	return func(c *CHIP8) {
		c.Logger = l
	}
}

// Debug enables the per-instruction disassembly trace.
func Debug() Opt {
	return func(c *CHIP8) {
		c.debug = true
	}
}

// CyclesPerSecond sets the instruction rate used by Start.
func CyclesPerSecond(n int) Opt {
	return func(c *CHIP8) {
		if n > 0 {
			c.cyclesPerSecond = n
		}
	}
}
