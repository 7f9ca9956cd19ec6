// Package io provides I/O devices for the TD4 emulator.
// It includes ROM image loading and saving (Rom), and a byte stream
// driven port device (Tape) that feeds the input latch and records the
// output latch.
package io

// Channel defines the interface for devices attached to the TD4 port.
// Values are 4-bit nibbles carried in the low bits of a byte.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns the next input value for the port.
	Receive() (value uint8, err error)
	// Send records an output value of the port.
	Send(value uint8) error
}
