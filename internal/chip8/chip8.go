// Package chip8 provides an emulation of a CHIP-8 machine. It
// wires the execution engine to the memory, display, timer and
// keypad components and drives them at a fixed cadence.
package chip8

import (
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/go-chip8/internal/cpu"
	"github.com/thelolagemann/go-chip8/internal/joypad"
	"github.com/thelolagemann/go-chip8/internal/memory"
	"github.com/thelolagemann/go-chip8/internal/ppu"
	"github.com/thelolagemann/go-chip8/internal/timer"
	"github.com/thelolagemann/go-chip8/internal/types"
	"github.com/thelolagemann/go-chip8/pkg/display/event"
	"github.com/thelolagemann/go-chip8/pkg/emulator"
	"github.com/thelolagemann/go-chip8/pkg/log"
)

const (
	// FrameRate is the rate the display is refreshed at.
	FrameRate = 60
	// FrameTime is the duration of a single frame.
	FrameTime = time.Second / FrameRate
	// DefaultCyclesPerSecond is the default instruction rate.
	// The original interpreters ran somewhere around 500-1000
	// instructions per second depending on the machine.
	DefaultCyclesPerSecond = 700
)

// CHIP8 represents a CHIP-8 machine. It contains all the
// components of the machine and is the main entry point for the
// emulator.
type CHIP8 struct {
	CPU    *cpu.CPU
	Memory *memory.Memory
	PPU    *ppu.PPU
	Timer  *timer.Controller
	Joypad *joypad.State

	variant         types.Variant
	cyclesPerSecond int
	debug           bool
	rom             []byte

	status        emulator.Status
	audioListener func(playing bool)

	mu sync.Mutex

	log.Logger
}

// NewCHIP8 returns a new CHIP8 with the given ROM loaded at the
// program start address. The ROM is validated for size before
// any state is constructed.
func NewCHIP8(rom []byte, opts ...Opt) (*CHIP8, error) {
	c := &CHIP8{
		variant:         types.CHIP8,
		cyclesPerSecond: DefaultCyclesPerSecond,
		rom:             rom,
		Logger:          log.New(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.build(); err != nil {
		return nil, err
	}

	return c, nil
}

// build constructs the machine state from the held ROM.
func (c *CHIP8) build() error {
	mem, err := memory.New(c.rom)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}

	c.Memory = mem
	c.PPU = ppu.New()
	c.Timer = timer.NewController()
	c.Joypad = joypad.New()
	c.CPU = cpu.NewCPU(c.Memory, c.PPU, c.Timer, c.Joypad, c.variant, c.Logger)
	c.CPU.Debug = c.debug

	return nil
}

// Cycle performs one emulation step: a timer tick check
// followed by one fetch-decode-execute step. Errors from the
// engine are returned to the caller untouched; the emulator
// makes no attempt at recovery.
func (c *CHIP8) Cycle() error {
	c.Timer.Tick()
	return c.CPU.Step()
}

// Variant returns the system variant being emulated.
func (c *CHIP8) Variant() types.Variant {
	return c.variant
}

// Framebuffer returns a copy of the 64x32 1-bit pixel grid.
func (c *CHIP8) Framebuffer() [ppu.ScreenHeight][ppu.ScreenWidth]bool {
	return c.PPU.Framebuffer()
}

// Frame returns the current frame expanded to RGB bytes.
func (c *CHIP8) Frame() []byte {
	return c.PPU.PrepareFrame()
}

// SetKey sets the pressed state of a keypad key. This is the
// write surface for the host's input collaborator.
func (c *CHIP8) SetKey(key joypad.Key, pressed bool) {
	if pressed {
		c.Joypad.Press(key)
	} else {
		c.Joypad.Release(key)
	}
}

// DelayTimer returns the delay timer value.
func (c *CHIP8) DelayTimer() uint8 {
	return c.Timer.Delay()
}

// SoundTimer returns the sound timer value. A host audio
// collaborator plays a tone while this is non-zero.
func (c *CHIP8) SoundTimer() uint8 {
	return c.Timer.Sound()
}

// AttachAudioListener attaches a function that is notified once
// per frame whether the sound timer is active.
func (c *CHIP8) AttachAudioListener(f func(playing bool)) {
	c.audioListener = f
}

// Status returns the status of the emulator.
func (c *CHIP8) Status() emulator.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// SendCommand sends a command packet to the emulator.
func (c *CHIP8) SendCommand(cmd emulator.CommandPacket) emulator.ResponsePacket {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch cmd.Command {
	case emulator.CommandPause:
		if c.status == emulator.Running {
			c.status = emulator.Paused
		}
	case emulator.CommandResume:
		if c.status == emulator.Paused {
			c.status = emulator.Running
		}
	case emulator.CommandClose:
		c.status = emulator.Halted
	case emulator.CommandReset:
		if err := c.build(); err != nil {
			return emulator.ResponsePacket{Command: cmd.Command, Error: err}
		}
		c.status = emulator.Running
	}

	return emulator.ResponsePacket{Command: cmd.Command}
}

// Start runs the emulation until it is closed or errors. Frames
// are published on fb whenever the display changed, input is
// drained from the pressed and released channels between
// frames, and driver-facing events are sent on events. Start is
// the single cycle driver; callers must not invoke Cycle
// concurrently with it.
func (c *CHIP8) Start(fb chan<- []byte, events chan<- event.Event, pressed, released <-chan joypad.Key) {
	events <- event.Event{Type: event.Title, Data: fmt.Sprintf("go-chip8 | %s", c.variant)}

	cyclesPerFrame := c.cyclesPerFrame()
	ticker := time.NewTicker(FrameTime)
	defer ticker.Stop()

	var lastFrame uint64
	for range ticker.C {
		c.processInputs(pressed, released)

		c.mu.Lock()
		if c.status == emulator.Halted {
			c.mu.Unlock()
			events <- event.Event{Type: event.Quit}
			return
		}
		if c.status == emulator.Running {
			for i := 0; i < cyclesPerFrame; i++ {
				if err := c.Cycle(); err != nil {
					c.Errorf("emulation halted: %s", err)
					c.status = emulator.Errored
					break
				}
			}
		}
		playing := c.status == emulator.Running && c.Timer.Sound() > 0
		c.mu.Unlock()

		if c.audioListener != nil {
			c.audioListener(playing)
		}

		frame := c.Frame()
		if h := xxhash.Sum64(frame); h != lastFrame {
			lastFrame = h
			fb <- append([]byte(nil), frame...)
		}
	}
}

// cyclesPerFrame returns the number of instructions Start
// executes per 60 Hz frame. Rates below the frame rate still
// execute at least one instruction per frame.
func (c *CHIP8) cyclesPerFrame() int {
	n := c.cyclesPerSecond / FrameRate
	if n < 1 {
		n = 1
	}
	return n
}

// processInputs drains any pending key events into the keypad.
func (c *CHIP8) processInputs(pressed, released <-chan joypad.Key) {
	for {
		select {
		case key := <-pressed:
			c.Joypad.Press(key)
		case key := <-released:
			c.Joypad.Release(key)
		default:
			return
		}
	}
}
