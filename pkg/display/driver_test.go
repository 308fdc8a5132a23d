package display

import (
	"testing"

	"github.com/thelolagemann/go-chip8/internal/joypad"
	"github.com/thelolagemann/go-chip8/pkg/display/event"
)

type nopDriver struct{}

func (nopDriver) Initialize(Emulator) {}

func (nopDriver) Start(<-chan []byte, <-chan event.Event, chan<- joypad.Key, chan<- joypad.Key) error {
	return nil
}

func (nopDriver) Stop() error { return nil }

func TestGetDriver(t *testing.T) {
	installed := InstalledDrivers
	InstalledDrivers = nil
	defer func() { InstalledDrivers = installed }()

	// with nothing installed, auto selects nothing
	if d := GetDriver("auto"); d != nil {
		t.Errorf("expected nil driver, got %v", d)
	}

	Install("nop", nopDriver{}, nil)

	if d := GetDriver("auto"); d == nil {
		t.Error("expected auto to select the installed driver")
	}
	if d := GetDriver("nop"); d == nil {
		t.Error("expected driver by name")
	}
	if d := GetDriver("missing"); d != nil {
		t.Errorf("expected nil driver, got %v", d)
	}
}
