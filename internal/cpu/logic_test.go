package cpu

import (
	"testing"

	"github.com/thelolagemann/go-chip8/internal/types"
)

func TestInstruction_Logic(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		want   uint8
	}{
		{"OR", 0x8011, 0xCC | 0xAA},
		{"AND", 0x8012, 0xCC & 0xAA},
		{"XOR", 0x8013, 0xCC ^ 0xAA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t, types.CHIP8)
			c.V[0] = 0xCC
			c.V[1] = 0xAA
			exec(t, c, tt.opcode)

			if c.V[0] != tt.want {
				t.Errorf("expected V0 0x%02X, got 0x%02X", tt.want, c.V[0])
			}
		})
	}
}

func TestInstruction_LogicFlagQuirk(t *testing.T) {
	// the baseline variant forces VF to 0 as a side effect of
	// the bitwise instructions, SUPER-CHIP leaves it untouched
	for _, opcode := range []uint16{0x8011, 0x8012, 0x8013} {
		t.Run("chip8", func(t *testing.T) {
			c := newTestCPU(t, types.CHIP8)
			c.V[0xF] = 0x42
			exec(t, c, opcode)

			if c.V[0xF] != 0 {
				t.Errorf("expected VF cleared, got 0x%02X", c.V[0xF])
			}
		})
		t.Run("schip", func(t *testing.T) {
			c := newTestCPU(t, types.SuperCHIP)
			c.V[0xF] = 0x42
			exec(t, c, opcode)

			if c.V[0xF] != 0x42 {
				t.Errorf("expected VF untouched, got 0x%02X", c.V[0xF])
			}
		})
	}
}

func TestInstruction_ShiftRight(t *testing.T) {
	t.Run("chip8 shifts Vy into Vx", func(t *testing.T) {
		c := newTestCPU(t, types.CHIP8)
		c.V[0] = 0xFF
		c.V[1] = 0x05
		exec(t, c, 0x8016)

		if c.V[0] != 0x02 {
			t.Errorf("expected V0 0x02, got 0x%02X", c.V[0])
		}
		if c.V[0xF] != 1 {
			t.Errorf("expected VF 1, got %d", c.V[0xF])
		}
	})
	t.Run("schip shifts Vx in place", func(t *testing.T) {
		c := newTestCPU(t, types.SuperCHIP)
		c.V[0] = 0x04
		c.V[1] = 0x05
		exec(t, c, 0x8016)

		if c.V[0] != 0x02 {
			t.Errorf("expected V0 0x02, got 0x%02X", c.V[0])
		}
		if c.V[0xF] != 0 {
			t.Errorf("expected VF 0, got %d", c.V[0xF])
		}
	})
}

func TestInstruction_ShiftLeft(t *testing.T) {
	t.Run("chip8 shifts Vy into Vx", func(t *testing.T) {
		c := newTestCPU(t, types.CHIP8)
		c.V[0] = 0x00
		c.V[1] = 0x81
		exec(t, c, 0x801E)

		if c.V[0] != 0x02 {
			t.Errorf("expected V0 0x02, got 0x%02X", c.V[0])
		}
		if c.V[0xF] != 1 {
			t.Errorf("expected VF 1, got %d", c.V[0xF])
		}
	})
	t.Run("schip shifts Vx in place", func(t *testing.T) {
		c := newTestCPU(t, types.SuperCHIP)
		c.V[0] = 0x41
		c.V[1] = 0x81
		exec(t, c, 0x801E)

		if c.V[0] != 0x82 {
			t.Errorf("expected V0 0x82, got 0x%02X", c.V[0])
		}
		if c.V[0xF] != 0 {
			t.Errorf("expected VF 0, got %d", c.V[0xF])
		}
	})
}

func TestInstruction_Rnd(t *testing.T) {
	c := newTestCPU(t, types.CHIP8)

	// a zero mask always yields zero
	c.V[0] = 0xFF
	exec(t, c, 0xC000)
	if c.V[0] != 0 {
		t.Errorf("expected V0 0, got 0x%02X", c.V[0])
	}

	// the result never has bits outside the mask
	for i := 0; i < 100; i++ {
		exec(t, c, 0xC00F)
		if c.V[0]&0xF0 != 0 {
			t.Fatalf("expected masked byte, got 0x%02X", c.V[0])
		}
	}
}
