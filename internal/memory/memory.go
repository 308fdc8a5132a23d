// Package memory provides the CHIP-8 4 KiB address space. The
// built-in hex digit font occupies low memory, programs are
// loaded at 0x200 and everything else reads back as zero.
package memory

import (
	"errors"
	"fmt"
)

const (
	// Size is the size of the address space in bytes.
	Size = 0x1000
	// ProgramStart is the address programs are loaded at, and
	// where execution begins.
	ProgramStart = 0x200
	// FontStart is the address of the built-in hex digit
	// sprites, 5 bytes per digit for digits 0x0 through 0xF.
	FontStart = 0x050

	fontGlyphSize = 5
)

// fontSprites are the built-in 8x5 hex digit sprites.
var fontSprites = [16 * fontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

var (
	// ErrEmptyROM is returned when loading a zero-length ROM.
	ErrEmptyROM = errors.New("empty rom")
	// ErrROMTooLarge is returned when a ROM does not fit in the
	// address space above ProgramStart.
	ErrROMTooLarge = errors.New("rom too large")
)

// OutOfBoundsError is returned when an address outside the
// address space is accessed.
type OutOfBoundsError struct {
	Address uint16
}

func (e OutOfBoundsError) Error() string {
	return fmt.Sprintf("memory access out of bounds: 0x%04X", e.Address)
}

// Memory represents the CHIP-8 address space.
type Memory struct {
	data [Size]byte
}

// New returns a new Memory with the font sprites installed and
// the provided ROM copied in at ProgramStart. Empty ROMs and
// ROMs larger than the space above ProgramStart are rejected.
func New(rom []byte) (*Memory, error) {
	if len(rom) == 0 {
		return nil, ErrEmptyROM
	}
	if len(rom) > Size-ProgramStart {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrROMTooLarge, len(rom), Size-ProgramStart)
	}

	m := &Memory{}
	copy(m.data[FontStart:], fontSprites[:])
	copy(m.data[ProgramStart:], rom)

	return m, nil
}

// Read reads the byte at the given address.
func (m *Memory) Read(addr uint16) (byte, error) {
	if addr >= Size {
		return 0, OutOfBoundsError{Address: addr}
	}
	return m.data[addr], nil
}

// ReadWord reads the big-endian 16-bit word at the given address.
func (m *Memory) ReadWord(addr uint16) (uint16, error) {
	if addr+1 >= Size || addr+1 < addr {
		return 0, OutOfBoundsError{Address: addr}
	}
	return uint16(m.data[addr])<<8 | uint16(m.data[addr+1]), nil
}

// Write writes a byte to the given address.
func (m *Memory) Write(addr uint16, value byte) error {
	if addr >= Size {
		return OutOfBoundsError{Address: addr}
	}
	m.data[addr] = value
	return nil
}

// FontAddress returns the address of the built-in sprite for
// the given hex digit. Only the low nibble of the digit is used.
func FontAddress(digit uint8) uint16 {
	return FontStart + uint16(digit&0xF)*fontGlyphSize
}
