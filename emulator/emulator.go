// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"iter"
	"log"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/io"
)

// Emulator state. CPU + program + IO channels.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the loaded program image.
	Patches  []Patch      // Memory patches applied on Reset.

	Input  io.Channel // Source of input values.
	Output io.Channel // Destination of output values.
}

// NewEmulator creates a new emulator, with an empty input and an
// unlimited output queue.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(nil),
		Program: &cpu.Program{},
		Input:   &io.Rom{},
		Output:  &io.Queue{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(emu.Program.Defines(), emu.Cpu.Defines())
}

// Reset reloads the program into a new CPU, and applies the patches.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu = emu.Program.Cpu()
	emu.Cpu.Verbose = emu.Verbose

	for _, patch := range emu.Patches {
		if emu.Verbose {
			log.Printf("emulator: patch %v", patch)
		}
		err = emu.Cpu.Poke(patch.Addr, patch.Value)
		if err != nil {
			return
		}
	}

	return
}

// receive takes the next value from the input channel.
func (emu *Emulator) receive() (value int64, ok bool, err error) {
	if emu.Input == nil {
		return
	}

	for v := range emu.Input.Receive() {
		value = v
		ok = true
		break
	}

	if !ok {
		if ec, is_err := emu.Input.(interface{ Err() error }); is_err {
			err = ec.Err()
		}
	}

	return
}

// Step runs the CPU to its next event, answering input requests from
// the Input channel, and sending any output to the Output channel.
// Returns a cpu.STATE_WAITING result if the Input channel is empty.
func (emu *Emulator) Step() (result cpu.Result, err error) {
	var input *int64
	for {
		result, err = emu.Cpu.Run(input)
		if err != nil {
			return
		}
		if result.State != cpu.STATE_WAITING {
			break
		}

		value, ok, rerr := emu.receive()
		if rerr != nil {
			err = rerr
			return
		}
		if !ok {
			return
		}
		if emu.Verbose {
			log.Printf("emulator: input %d", value)
		}
		input = &value
	}

	if result.State == cpu.STATE_OUTPUT {
		if emu.Verbose {
			log.Printf("emulator: output %d", result.Output)
		}
		err = emu.Output.Send(result.Output)
	}

	return
}

// Tick performs a single event of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: emu.Cpu.Ip, Err: err}
		}
	}()

	result, err := emu.Step()
	if err != nil {
		return
	}

	switch result.State {
	case cpu.STATE_FINISHED:
		done = true
	case cpu.STATE_WAITING:
		err = ErrInputEmpty
	}

	return
}

// Finish ticks the emulator until the program finishes.
func (emu *Emulator) Finish() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
