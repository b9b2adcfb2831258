package cpu

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Error classes
	ErrLoad    = errors.New(f("load"))
	ErrDecode  = errors.New(f("decode"))
	ErrOperand = errors.New(f("operand"))

	// Cpu errors
	ErrFaulted = errors.New(f("cpu faulted"))

	// Instruction decode errors
	ErrOpcodeInvalid = errors.New(f("opcode invalid"))
	ErrModeInvalid   = errors.New(f("mode invalid"))

	// Operand errors
	ErrImmediateWrite = errors.New(f("write to immediate"))
)

// ErrOpcode identifies the instruction word that faulted.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode %d %v", int64(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrAddress is a negative resolved memory address.
type ErrAddress int64

func (ea ErrAddress) Error() string {
	return f("address %d negative", int64(ea))
}

func (ea ErrAddress) Is(err error) (ok bool) {
	_, ok = err.(ErrAddress)
	return
}

// ErrParseNumber is a program token that is not a decimal integer.
type ErrParseNumber struct {
	Index int
	Token string
}

func (err ErrParseNumber) Error() string {
	return f("token %d '%v' is not a number", err.Index, err.Token)
}

func (err ErrParseNumber) Unwrap() error {
	return ErrLoad
}
