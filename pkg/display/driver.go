// Package display provides the display driver registry. A
// driver presents frames produced by the emulator and feeds key
// presses back to it; drivers register themselves from their
// init functions so that importing a driver package installs it.
package display

import (
	"flag"
	"fmt"

	"github.com/thelolagemann/go-chip8/internal/joypad"
	"github.com/thelolagemann/go-chip8/pkg/display/event"
	"github.com/thelolagemann/go-chip8/pkg/emulator"
)

// Driver is the interface that wraps the basic methods for a
// display driver.
type Driver interface {
	// Initialize initializes the display driver by attaching it to
	// the emulator that is using it.
	Initialize(emu Emulator)
	// Start the display driver. Frames arrive as RGB byte
	// slices; key presses and releases are sent back on the
	// provided channels.
	Start(fb <-chan []byte, events <-chan event.Event, pressed, released chan<- joypad.Key) error
	// Stop the display driver.
	Stop() error
}

// Emulator is the interface a driver uses to control the
// emulator it is attached to.
type Emulator interface {
	// SendCommand sends a command packet to the emulator.
	SendCommand(command emulator.CommandPacket) emulator.ResponsePacket
	// Status returns the status of the emulator.
	Status() emulator.Status
}

var (
	Pause  = emulator.CommandPacket{Command: emulator.CommandPause}
	Resume = emulator.CommandPacket{Command: emulator.CommandResume}
	Reset  = emulator.CommandPacket{Command: emulator.CommandReset}
	Close  = emulator.CommandPacket{Command: emulator.CommandClose}
)

// DriverOption is a display driver option. This is used to
// configure a display driver.
type DriverOption struct {
	Name        string // name of the option
	Default     any    // default value of the option
	Value       any    // pointer to the value of the option
	Description string // description of the option
	Type        string // "bool", "string", "float"
}

// InstalledDriver is a driver that has been installed.
type InstalledDriver struct {
	Name    string
	Options []DriverOption
	Driver
}

// InstalledDrivers is a list of all the installed drivers.
// Drivers call display.Install in their init() function.
var InstalledDrivers []*InstalledDriver

// GetDriver returns the driver with the given name, or nil if
// no driver with that name is installed. "auto" selects the
// first installed driver.
func GetDriver(name string) Driver {
	if name == "auto" {
		if len(InstalledDrivers) == 0 {
			return nil
		}
		return InstalledDrivers[0]
	}
	for _, driver := range InstalledDrivers {
		if driver.Name == name {
			return driver.Driver
		}
	}

	return nil
}

// Install registers a display driver with the given name.
func Install(name string, driver Driver, options []DriverOption) {
	InstalledDrivers = append(InstalledDrivers, &InstalledDriver{
		Name:    name,
		Options: options,
		Driver:  driver,
	})
}

// RegisterFlags registers every installed driver's options with
// the flag package, prefixed with the driver name.
func RegisterFlags() {
	for _, driver := range InstalledDrivers {
		for _, opt := range driver.Options {
			name := fmt.Sprintf("%s-%s", driver.Name, opt.Name)
			switch opt.Type {
			case "string":
				flag.StringVar(opt.Value.(*string), name, opt.Default.(string), opt.Description)
			case "bool":
				flag.BoolVar(opt.Value.(*bool), name, opt.Default.(bool), opt.Description)
			case "float":
				flag.Float64Var(opt.Value.(*float64), name, opt.Default.(float64), opt.Description)
			}
		}
	}
}
