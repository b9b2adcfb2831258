package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/io"
)

func loadProgram(t *testing.T, text string) *cpu.Program {
	prog, err := cpu.ParseProgram(strings.NewReader(text))
	if err != nil {
		t.Fatalf("%v: %v", text, err)
	}
	return prog
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.NotNil(emu.Program)

	// An empty program finishes immediately.
	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorTick(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = loadProgram(t, "104,1,104,2,99")
	output := &io.Queue{}
	emu.Output = output

	assert.NoError(emu.Reset())

	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal([]int64{1}, output.Data)

	done, err = emu.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal([]int64{1, 2}, output.Data)

	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorRom(t *testing.T) {
	assert := assert.New(t)

	program := "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31," +
		"1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104," +
		"999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"

	table := map[int64]int64{7: 999, 8: 1000, 9: 1001}

	for input, expected := range table {
		emu := NewEmulator()
		emu.Program = loadProgram(t, program)
		emu.Input = &io.Rom{Data: []int64{input}}
		output := &io.Queue{}
		emu.Output = output

		assert.NoError(emu.Reset())
		assert.NoError(emu.Finish())
		assert.Equal([]int64{expected}, output.Data, input)
	}
}

func TestEmulatorTape(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	// Adds pairs of inputs until a zero pair.
	emu.Program = loadProgram(t, "3,100,3,101,1,100,101,102,4,102,1005,102,0,99")
	output := &bytes.Buffer{}
	emu.Input = &io.Tape{Input: strings.NewReader("1,2\n30 40\n0,0\n")}
	emu.Output = &io.Tape{Output: output}

	assert.NoError(emu.Reset())
	assert.NoError(emu.Finish())
	assert.Equal("3\n70\n0\n", output.String())
}

func TestEmulatorTapeAscii(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	// Echoes input until end of line.
	emu.Program = loadProgram(t, "3,100,4,100,1008,100,10,101,1006,101,0,99")
	output := &bytes.Buffer{}
	emu.Input = &io.Tape{Input: strings.NewReader("Hi!\nignored"), Ascii: true}
	emu.Output = &io.Tape{Output: output, Ascii: true}

	assert.NoError(emu.Reset())
	assert.NoError(emu.Finish())
	assert.Equal("Hi!\n", output.String())
}

func TestEmulatorInputEmpty(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = loadProgram(t, "104,7,3,0,99")
	assert.NoError(emu.Reset())

	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)

	done, err = emu.Tick()
	assert.False(done)
	assert.True(errors.Is(err, ErrInputEmpty))

	var rerr *ErrRuntime
	if assert.True(errors.As(err, &rerr)) {
		assert.Equal(int64(2), rerr.Ip)
	}

	// Not a fault; supplying input resumes.
	emu.Input = &io.Rom{Data: []int64{5}}
	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)

	val, err := emu.Peek(0)
	assert.NoError(err)
	assert.Equal(int64(5), val)
}

func TestEmulatorTapeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = loadProgram(t, "3,0,3,0,99")
	emu.Input = &io.Tape{Input: strings.NewReader("1,x")}
	assert.NoError(emu.Reset())

	err := emu.Finish()
	var terr io.ErrTapeNumber
	assert.True(errors.As(err, &terr))
	assert.Equal(io.ErrTapeNumber("x"), terr)
}

func TestEmulatorFault(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = loadProgram(t, "1101,97,1,4,0")
	assert.NoError(emu.Reset())

	err := emu.Finish()
	assert.True(errors.Is(err, cpu.ErrDecode))

	var rerr *ErrRuntime
	if assert.True(errors.As(err, &rerr)) {
		assert.Equal(int64(4), rerr.Ip)
	}

	// Reset recovers from a fault.
	emu.Program = loadProgram(t, "99")
	assert.NoError(emu.Reset())
	assert.NoError(emu.Finish())
}

func TestEmulatorVerbose(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Verbose = true
	emu.Program = loadProgram(t, "3,0,4,0,99")
	emu.Input = &io.Rom{Data: []int64{3}}
	emu.Patches = []Patch{{Addr: 10, Value: 1}}

	assert.NoError(emu.Reset())
	assert.True(emu.Cpu.Verbose)
	assert.NoError(emu.Finish())
	assert.Equal(2, emu.Cpu.Ticks)
}

// TestEmulatorFeedback connects emulators in a ring of queues, each
// seeded with a phase setting.
func TestEmulatorFeedback(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		program string
		phases  []int64
		signal  int64
	}){
		{"3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0",
			[]int64{4, 3, 2, 1, 0}, 43210},
		{"3,23,3,24,1002,24,10,24,1002,23,-1,23,101,5,23,23,1,24,23,23,4,23,99,0,0",
			[]int64{0, 1, 2, 3, 4}, 54321},
		{"3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5",
			[]int64{9, 8, 7, 6, 5}, 139629729},
		{"3,52,1001,52,-5,52,3,53,1,52,56,54,1007,54,5,55,1005,55,26,1001,54,-5,54," +
			"1105,1,12,1,53,54,53,1008,54,0,55,1001,55,1,55,2,53,55,53,4,53,1001,56,-1,56," +
			"1005,56,6,99,0,0,0,0,10",
			[]int64{9, 7, 8, 5, 6}, 18216},
	}

	for _, entry := range table {
		prog := loadProgram(t, entry.program)

		count := len(entry.phases)
		queues := make([]*io.Queue, count)
		for n, phase := range entry.phases {
			queues[n] = &io.Queue{Data: []int64{phase}}
		}
		queues[0].Send(0)

		amps := make([]*Emulator, count)
		for n := range amps {
			emu := NewEmulator()
			emu.Program = prog
			emu.Input = queues[n]
			emu.Output = queues[(n+1)%count]
			assert.NoError(emu.Reset())
			amps[n] = emu
		}

		for finished := 0; finished < count; {
			finished = 0
			for _, amp := range amps {
				result, err := amp.Step()
				assert.NoError(err)
				if err != nil {
					t.FailNow()
				}
				if result.State == cpu.STATE_FINISHED {
					finished++
				}
			}
		}

		assert.Equal([]int64{entry.signal}, queues[0].Data, entry.program)
	}
}
