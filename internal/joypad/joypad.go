// Package joypad provides the CHIP-8 16-key hex keypad. The
// keypad is written by the host's input collaborator and read
// by the execution engine.
package joypad

// Key represents a key on the hex keypad, 0x0 through 0xF.
type Key = uint8

const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF

	// NumKeys is the number of keys on the keypad.
	NumKeys = 16
)

// State represents the state of the keypad. All keys start
// released.
type State struct {
	keys [NumKeys]bool
}

// New returns a new keypad state.
func New() *State {
	return &State{}
}

// Press marks a key as pressed. Only the low nibble of the key
// index is used.
func (s *State) Press(key Key) {
	s.keys[key&0xF] = true
}

// Release marks a key as released.
func (s *State) Release(key Key) {
	s.keys[key&0xF] = false
}

// Pressed reports whether a key is currently pressed.
func (s *State) Pressed(key Key) bool {
	return s.keys[key&0xF]
}

// FirstPressed scans the keypad in ascending key order and
// returns the first pressed key, if any.
func (s *State) FirstPressed() (Key, bool) {
	for k := Key0; k < NumKeys; k++ {
		if s.keys[k] {
			return k, true
		}
	}
	return 0, false
}
