// Package io provides output channel implementations for the LS-8 emulator.
// A channel receives the register values printed by the PRN instruction.
package io

// Channel defines the interface for the output channels of the LS-8 system.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Send writes a single value to the channel.
	Send(value uint8) error
}
