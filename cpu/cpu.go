package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
)

// State is the execution state reported by Run.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_FINISHED = State(0) // finished
	STATE_WAITING  = State(1) // waiting
	STATE_OUTPUT   = State(2) // output
)

// Result is the event returned by Run.
type Result struct {
	State  State // Execution state.
	Output int64 // Output value, when State is STATE_OUTPUT.
}

var _cpu_defines = map[string]string{
	"OP_ADD":         fmt.Sprintf("%d", OP_ADD),
	"OP_MUL":         fmt.Sprintf("%d", OP_MUL),
	"OP_IN":          fmt.Sprintf("%d", OP_IN),
	"OP_OUT":         fmt.Sprintf("%d", OP_OUT),
	"OP_JT":          fmt.Sprintf("%d", OP_JT),
	"OP_JF":          fmt.Sprintf("%d", OP_JF),
	"OP_LT":          fmt.Sprintf("%d", OP_LT),
	"OP_EQ":          fmt.Sprintf("%d", OP_EQ),
	"OP_ARB":         fmt.Sprintf("%d", OP_ARB),
	"OP_HALT":        fmt.Sprintf("%d", OP_HALT),
	"MODE_POSITION":  fmt.Sprintf("%d", MODE_POSITION),
	"MODE_IMMEDIATE": fmt.Sprintf("%d", MODE_IMMEDIATE),
	"MODE_RELATIVE":  fmt.Sprintf("%d", MODE_RELATIVE),
}

// Cpu is the execution context of a single program.
//
// A Cpu must not be used from more than one goroutine at a time. Use Clone
// to fork execution.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory       Memory // Program memory.
	Ip           int64  // Current instruction pointer.
	RelativeBase int64  // Base of MODE_RELATIVE addresses.

	Ticks int // Executed instruction counter.

	fault error // Set once the cpu has faulted.
}

// NewCpu creates a new CPU with a copy of 'mem' as its memory image.
func NewCpu(mem []int64) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: Memory{Data: slices.Clone(mem)},
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Clone returns an independent copy of the CPU state.
func (cpu *Cpu) Clone() (clone *Cpu) {
	clone = &Cpu{}
	*clone = *cpu
	clone.Memory = cpu.Memory.Clone()

	return
}

// Fault returns the error that stopped the CPU, if any.
func (cpu *Cpu) Fault() error {
	return cpu.fault
}

// Peek reads memory at 'addr'.
func (cpu *Cpu) Peek(addr int64) (value int64, err error) {
	return cpu.Memory.Read(addr)
}

// Poke writes memory at 'addr', growing memory as needed.
func (cpu *Cpu) Poke(addr int64, value int64) (err error) {
	return cpu.Memory.Write(addr, value)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"ip",
		"rb",
		"code",
		"ticks",
		"mem",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "ip":
			strval = fmt.Sprintf("%d", cpu.Ip)
		case "rb":
			strval = fmt.Sprintf("%d", cpu.RelativeBase)
		case "code":
			if cpu.Ip < cpu.Memory.Len() {
				strval = Code(cpu.Memory.Data[cpu.Ip]).String()
			} else {
				strval = "-"
			}
		case "ticks":
			strval = fmt.Sprintf("%d", cpu.Ticks)
		case "mem":
			strval = fmt.Sprintf("%d", cpu.Memory.Len())
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Run executes until the next event:
//   - STATE_OUTPUT after an output instruction.
//   - STATE_WAITING at an input instruction when 'input' is nil, or was
//     already consumed by an earlier input instruction in this call.
//     The CPU is left unchanged, so the same instruction runs again on
//     the next call.
//   - STATE_FINISHED on halt, or when Ip runs past the end of memory.
//
// Any error is a fault. A faulted CPU returns ErrFaulted from every
// following call.
func (cpu *Cpu) Run(input *int64) (result Result, err error) {
	if cpu.fault != nil {
		err = errors.Join(ErrFaulted, cpu.fault)
		return
	}

	for cpu.Ip < cpu.Memory.Len() {
		code := Code(cpu.Memory.Data[cpu.Ip])

		var yield bool
		yield, result, err = cpu.Execute(code, input)
		if err != nil {
			cpu.fault = err
			return
		}
		if yield {
			return
		}

		// At most one input per call.
		if code.Op() == OP_IN {
			input = nil
		}
	}

	result = Result{State: STATE_FINISHED}
	return
}

// RunWithConstantInput runs, answering every input request with 'value',
// until the first output or until the program finishes.
func (cpu *Cpu) RunWithConstantInput(value int64) (output int64, ok bool, err error) {
	for {
		var result Result
		result, err = cpu.Run(&value)
		if err != nil {
			return
		}

		switch result.State {
		case STATE_OUTPUT:
			output = result.Output
			ok = true
			return
		case STATE_FINISHED:
			return
		}
	}
}

// Execute executes a single instruction at the current Ip.
// If 'yield' is set, the caller must return 'result' to its caller.
func (cpu *Cpu) Execute(code Code, input *int64) (yield bool, result Result, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	op, modes, err := code.Decode()
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%04d: %v", cpu.Ip, code)
	}

	var args [CODE_ARGS]int64
	for n := range op.Width() - 1 {
		args[n], err = cpu.Memory.Read(cpu.Ip + 1 + n)
		if err != nil {
			return
		}
	}

	next_ip := cpu.Ip + op.Width()

	switch op {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		var a, b, addr int64
		a, err = cpu.getValue(modes[0], args[0])
		if err != nil {
			return
		}
		b, err = cpu.getValue(modes[1], args[1])
		if err != nil {
			return
		}
		addr, err = cpu.getWriteAddress(modes[2], args[2])
		if err != nil {
			return
		}
		var value int64
		switch op {
		case OP_ADD:
			value = a + b
		case OP_MUL:
			value = a * b
		case OP_LT:
			if a < b {
				value = 1
			}
		case OP_EQ:
			if a == b {
				value = 1
			}
		}
		err = cpu.Memory.Write(addr, value)
	case OP_IN:
		var addr int64
		addr, err = cpu.getWriteAddress(modes[0], args[0])
		if err != nil {
			return
		}
		if input == nil {
			yield = true
			result = Result{State: STATE_WAITING}
			return
		}
		err = cpu.Memory.Write(addr, *input)
	case OP_OUT:
		var a int64
		a, err = cpu.getValue(modes[0], args[0])
		if err != nil {
			return
		}
		yield = true
		result = Result{State: STATE_OUTPUT, Output: a}
	case OP_JT, OP_JF:
		var a, b int64
		a, err = cpu.getValue(modes[0], args[0])
		if err != nil {
			return
		}
		b, err = cpu.getValue(modes[1], args[1])
		if err != nil {
			return
		}
		if (a != 0) == (op == OP_JT) {
			if b < 0 {
				err = errors.Join(ErrOperand, ErrAddress(b))
				return
			}
			next_ip = b
		}
	case OP_ARB:
		var a int64
		a, err = cpu.getValue(modes[0], args[0])
		if err != nil {
			return
		}
		cpu.RelativeBase += a
	case OP_HALT:
		yield = true
		result = Result{State: STATE_FINISHED}
		return
	}
	if err != nil {
		return
	}

	cpu.Ip = next_ip
	cpu.Ticks += 1

	return
}

// getAddress resolves the memory address of an operand.
func (cpu *Cpu) getAddress(mode CodeMode, raw int64) (addr int64, err error) {
	switch mode {
	case MODE_POSITION:
		addr = raw
	case MODE_RELATIVE:
		addr = cpu.RelativeBase + raw
	case MODE_IMMEDIATE:
		err = errors.Join(ErrOperand, ErrImmediateWrite)
		return
	default:
		err = errors.Join(ErrDecode, ErrModeInvalid)
		return
	}

	if addr < 0 {
		err = errors.Join(ErrOperand, ErrAddress(addr))
	}

	return
}

// getWriteAddress resolves the destination of an operand, which must lie
// below MEMORY_MAX.
func (cpu *Cpu) getWriteAddress(mode CodeMode, raw int64) (addr int64, err error) {
	addr, err = cpu.getAddress(mode, raw)
	if err != nil {
		return
	}

	if addr >= MEMORY_MAX {
		err = errors.Join(ErrOperand, ErrAddress(addr))
	}

	return
}

// getValue resolves the value of an operand.
func (cpu *Cpu) getValue(mode CodeMode, raw int64) (value int64, err error) {
	if mode == MODE_IMMEDIATE {
		value = raw
		return
	}

	addr, err := cpu.getAddress(mode, raw)
	if err != nil {
		return
	}

	return cpu.Memory.Read(addr)
}
