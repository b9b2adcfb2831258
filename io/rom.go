package io

import (
	"iter"
)

// Rom is a fixed list of input values.
type Rom struct {
	Data []int64

	readIndex int
}

var _ Channel = (*Rom)(nil)

// Rewind restarts reading from the first value.
func (rc *Rom) Rewind() {
	rc.readIndex = 0
}

// Receive yields the values not yet read.
func (rc *Rom) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		for rc.readIndex < len(rc.Data) {
			value := rc.Data[rc.readIndex]
			rc.readIndex++
			if !yield(value) {
				return
			}
		}
	}
}

// Send is not permitted on a Rom.
func (rc *Rom) Send(value int64) error {
	return ErrChannelReadOnly
}
