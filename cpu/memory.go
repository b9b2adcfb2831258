package cpu

import (
	"errors"
	"slices"
)

// MEMORY_MAX is the first address that cannot be written.
const MEMORY_MAX = int64(1 << 24)

// Memory is a linear store that grows on write. Cells that were never
// written read as zero.
type Memory struct {
	Data []int64
}

// Len returns the current memory length.
func (mem *Memory) Len() int64 {
	return int64(len(mem.Data))
}

// Read returns the value at 'addr', or zero past the end of memory.
func (mem *Memory) Read(addr int64) (value int64, err error) {
	if addr < 0 {
		err = errors.Join(ErrOperand, ErrAddress(addr))
		return
	}

	if addr < mem.Len() {
		value = mem.Data[addr]
	}

	return
}

// Slot returns the cell at 'addr', growing memory with zeros as needed.
// The slot is only valid until the next growth.
func (mem *Memory) Slot(addr int64) (slot *int64, err error) {
	if addr < 0 || addr >= MEMORY_MAX {
		err = errors.Join(ErrOperand, ErrAddress(addr))
		return
	}

	if addr >= mem.Len() {
		mem.Data = append(mem.Data, make([]int64, addr+1-mem.Len())...)
	}

	slot = &mem.Data[addr]
	return
}

// Write stores 'value' at 'addr', growing memory with zeros as needed.
func (mem *Memory) Write(addr int64, value int64) (err error) {
	slot, err := mem.Slot(addr)
	if err != nil {
		return
	}

	*slot = value
	return
}

// Clone returns an independent copy of the memory.
func (mem *Memory) Clone() Memory {
	return Memory{Data: slices.Clone(mem.Data)}
}
