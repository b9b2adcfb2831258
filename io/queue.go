package io

import (
	"iter"
)

// Queue is a FIFO of values, usually connecting the output of one
// processor to the input of another.
type Queue struct {
	Capacity int // Capacity in values, or 0 for unlimited.

	Data []int64
}

var _ Channel = (*Queue)(nil)

// Rewind empties the queue.
func (queue *Queue) Rewind() {
	queue.Data = nil
}

// Len returns the number of queued values.
func (queue *Queue) Len() int {
	return len(queue.Data)
}

// Receive yields queued values until empty. Values sent while iterating
// are also yielded.
func (queue *Queue) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		for len(queue.Data) > 0 {
			value := queue.Data[0]
			queue.Data = queue.Data[1:]
			if !yield(value) {
				return
			}
		}
	}
}

// Send appends a value to the queue.
// Returns ErrChannelFull if the queue has reached capacity.
func (queue *Queue) Send(value int64) (err error) {
	if queue.Capacity > 0 && len(queue.Data) >= queue.Capacity {
		err = ErrChannelFull
		return
	}

	queue.Data = append(queue.Data, value)

	return
}
