// Package io provides I/O channel implementations for the intcode emulator.
// It includes an in-memory FIFO (Queue) for connecting processors to each
// other, a preset list of values (Rom), and a text stream (Tape).
package io

import (
	"iter"
)

// Channel defines the interface for all I/O channels.
// Channels carry one integer per transfer.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns an iterator that yields values from the channel.
	// A value is consumed once it has been yielded.
	Receive() iter.Seq[int64]
	// Send writes a single value to the channel.
	Send(value int64) error
}
