// Package event defines the events that an emulator sends to
// its display driver.
package event

// Type defines the various event types that can be sent to a
// display driver.
type Type int

const (
	// Quit is sent when the emulator has stopped and the driver
	// should close.
	Quit Type = iota
	// Title is sent when the window title should change.
	Title
)

// Event is an event sent from the emulator to the display
// driver.
type Event struct {
	// Type is the type of event.
	Type Type
	// Data is the data of the event.
	Data interface{}
}
