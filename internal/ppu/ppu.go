// Package ppu provides the CHIP-8 monochrome display: a 64x32
// grid of 1-bit pixels that sprites are XOR-composited onto.
package ppu

const (
	// ScreenWidth is the width of the display in pixels.
	ScreenWidth = 64
	// ScreenHeight is the height of the display in pixels.
	ScreenHeight = 32

	// FrameSize is the size of a prepared RGB frame in bytes.
	FrameSize = ScreenWidth * ScreenHeight * 3
)

// PPU represents the CHIP-8 display.
type PPU struct {
	fb [ScreenHeight][ScreenWidth]bool

	// PreparedFrame is the framebuffer expanded to 8-bit RGB,
	// row major, ready to be handed to a display driver.
	PreparedFrame [FrameSize]byte
}

// New returns a new PPU with a cleared display.
func New() *PPU {
	return &PPU{}
}

// Clear zeroes the framebuffer.
func (p *PPU) Clear() {
	p.fb = [ScreenHeight][ScreenWidth]bool{}
}

// Draw XOR-composites the given sprite onto the framebuffer at
// (x, y) and reports whether any set pixel was cleared. Each
// sprite byte is one row of 8 pixels, MSB leftmost. Pixels that
// fall outside the grid are clipped, not wrapped; a sprite whose
// starting row is already off-grid draws nothing.
func (p *PPU) Draw(sprite []byte, x, y uint8) bool {
	collision := false
	for row, b := range sprite {
		py := int(y) + row
		if py >= ScreenHeight {
			break
		}
		for col := 0; col < 8; col++ {
			if b&(0x80>>col) == 0 {
				continue
			}
			px := int(x) + col
			if px >= ScreenWidth {
				continue
			}
			if p.fb[py][px] {
				collision = true
			}
			p.fb[py][px] = !p.fb[py][px]
		}
	}
	return collision
}

// Framebuffer returns a copy of the 1-bit pixel grid.
func (p *PPU) Framebuffer() [ScreenHeight][ScreenWidth]bool {
	return p.fb
}

// PrepareFrame expands the framebuffer into PreparedFrame and
// returns it as a slice.
func (p *PPU) PrepareFrame() []byte {
	i := 0
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			var v byte
			if p.fb[y][x] {
				v = 0xFF
			}
			p.PreparedFrame[i] = v
			p.PreparedFrame[i+1] = v
			p.PreparedFrame[i+2] = v
			i += 3
		}
	}
	return p.PreparedFrame[:]
}
