package chip8

import (
	"testing"

	"github.com/thelolagemann/go-chip8/internal/memory"
	"github.com/thelolagemann/go-chip8/internal/types"
	"github.com/thelolagemann/go-chip8/pkg/emulator"
	"github.com/thelolagemann/go-chip8/pkg/log"
)

func newTestCHIP8(t *testing.T, rom []byte, opts ...Opt) *CHIP8 {
	t.Helper()

	opts = append(opts, WithLogger(log.NewNullLogger()))
	c, err := NewCHIP8(rom, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestNewCHIP8_Validation(t *testing.T) {
	if _, err := NewCHIP8(nil); err == nil {
		t.Error("expected error for empty rom")
	}
	if _, err := NewCHIP8(make([]byte, memory.Size)); err == nil {
		t.Error("expected error for oversized rom")
	}
}

func TestCycle_Scenario(t *testing.T) {
	// 0x6005 set V0=5, 0x7003 add V0+=3
	c := newTestCHIP8(t, []byte{0x60, 0x05, 0x70, 0x03})

	if err := c.Cycle(); err != nil {
		t.Fatal(err)
	}
	if err := c.Cycle(); err != nil {
		t.Fatal(err)
	}

	if c.CPU.V[0] != 8 {
		t.Errorf("expected V0 8, got %d", c.CPU.V[0])
	}
	if c.CPU.PC != memory.ProgramStart+4 {
		t.Errorf("expected PC 0x%04X, got 0x%04X", memory.ProgramStart+4, c.CPU.PC)
	}
	if c.CPU.V[0xF] != 0 {
		t.Errorf("expected flag register unchanged, got %d", c.CPU.V[0xF])
	}
}

func TestCycle_DrawBlankMemory(t *testing.T) {
	// 0xA050 I=0x050... but pointed at zeroed memory instead:
	// draw from an address holding only zero bytes
	c := newTestCHIP8(t, []byte{0xA4, 0x00, 0xD0, 0x05})

	if err := c.Cycle(); err != nil {
		t.Fatal(err)
	}
	if err := c.Cycle(); err != nil {
		t.Fatal(err)
	}

	fb := c.Framebuffer()
	for y := range fb {
		for x := range fb[y] {
			if fb[y][x] {
				t.Fatalf("expected blank framebuffer, pixel (%d, %d) set", x, y)
			}
		}
	}
	if c.CPU.V[0xF] != 0 {
		t.Errorf("expected collision flag 0, got %d", c.CPU.V[0xF])
	}
}

func TestCycle_VariantQuirk(t *testing.T) {
	rom := []byte{0xA3, 0x00, 0xF3, 0x55} // I=0x300, dump V0..V3

	t.Run("chip8", func(t *testing.T) {
		c := newTestCHIP8(t, rom, AsVariant(types.CHIP8))
		if err := c.Cycle(); err != nil {
			t.Fatal(err)
		}
		if err := c.Cycle(); err != nil {
			t.Fatal(err)
		}
		if c.CPU.I != 0x304 {
			t.Errorf("expected I 0x304, got 0x%04X", c.CPU.I)
		}
	})
	t.Run("schip", func(t *testing.T) {
		c := newTestCHIP8(t, rom, AsVariant(types.SuperCHIP))
		if err := c.Cycle(); err != nil {
			t.Fatal(err)
		}
		if err := c.Cycle(); err != nil {
			t.Fatal(err)
		}
		if c.CPU.I != 0x300 {
			t.Errorf("expected I 0x300, got 0x%04X", c.CPU.I)
		}
	})
}

func TestCycle_UnknownOpcode(t *testing.T) {
	c := newTestCHIP8(t, []byte{0xFF, 0xFF})

	if err := c.Cycle(); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestSetKey(t *testing.T) {
	c := newTestCHIP8(t, []byte{0x00, 0x00})

	c.SetKey(0x4, true)
	if !c.Joypad.Pressed(0x4) {
		t.Error("expected key 0x4 pressed")
	}
	c.SetKey(0x4, false)
	if c.Joypad.Pressed(0x4) {
		t.Error("expected key 0x4 released")
	}
}

func TestTimerSurfaces(t *testing.T) {
	c := newTestCHIP8(t, []byte{0x00, 0x00})

	c.Timer.SetDelay(12)
	c.Timer.SetSound(34)

	if c.DelayTimer() != 12 {
		t.Errorf("expected delay timer 12, got %d", c.DelayTimer())
	}
	if c.SoundTimer() != 34 {
		t.Errorf("expected sound timer 34, got %d", c.SoundTimer())
	}
}

func TestCyclesPerFrame(t *testing.T) {
	c := newTestCHIP8(t, []byte{0x00, 0x00})
	if got := c.cyclesPerFrame(); got != DefaultCyclesPerSecond/FrameRate {
		t.Errorf("expected %d cycles per frame, got %d", DefaultCyclesPerSecond/FrameRate, got)
	}

	// a rate below 60 would truncate to zero cycles per frame
	// and stall the emulation
	c = newTestCHIP8(t, []byte{0x00, 0x00}, CyclesPerSecond(30))
	if got := c.cyclesPerFrame(); got != 1 {
		t.Errorf("expected 1 cycle per frame, got %d", got)
	}
}

func TestSendCommand(t *testing.T) {
	c := newTestCHIP8(t, []byte{0x60, 0x05})

	if !c.Status().IsRunning() {
		t.Errorf("expected Running, got %s", c.Status())
	}

	c.SendCommand(emulator.CommandPacket{Command: emulator.CommandPause})
	if !c.Status().IsPaused() {
		t.Errorf("expected Paused, got %s", c.Status())
	}

	c.SendCommand(emulator.CommandPacket{Command: emulator.CommandResume})
	if !c.Status().IsRunning() {
		t.Errorf("expected Running, got %s", c.Status())
	}

	// reset restores the power-on state
	if err := c.Cycle(); err != nil {
		t.Fatal(err)
	}
	resp := c.SendCommand(emulator.CommandPacket{Command: emulator.CommandReset})
	if resp.Error != nil {
		t.Fatal(resp.Error)
	}
	if c.CPU.PC != memory.ProgramStart {
		t.Errorf("expected PC reset to 0x%04X, got 0x%04X", memory.ProgramStart, c.CPU.PC)
	}
	if c.CPU.V[0] != 0 {
		t.Errorf("expected V0 reset to 0, got %d", c.CPU.V[0])
	}

	c.SendCommand(emulator.CommandPacket{Command: emulator.CommandClose})
	if !c.Status().IsHalted() {
		t.Errorf("expected Halted, got %s", c.Status())
	}
}
