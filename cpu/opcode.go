package cpu

import (
	"errors"
	"fmt"
)

// CodeOp is an operation selector, the low two decimal digits of a Code.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_ADD  = CodeOp(1)  // add
	OP_MUL  = CodeOp(2)  // mul
	OP_IN   = CodeOp(3)  // in
	OP_OUT  = CodeOp(4)  // out
	OP_JT   = CodeOp(5)  // jt
	OP_JF   = CodeOp(6)  // jf
	OP_LT   = CodeOp(7)  // lt
	OP_EQ   = CodeOp(8)  // eq
	OP_ARB  = CodeOp(9)  // arb
	OP_HALT = CodeOp(99) // halt
)

// CodeMode is an operand addressing mode.
type CodeMode int

//go:generate go tool stringer -linecomment -type=CodeMode
const (
	MODE_POSITION  = CodeMode(0) // position
	MODE_IMMEDIATE = CodeMode(1) // immediate
	MODE_RELATIVE  = CodeMode(2) // relative
)

// CODE_ARGS is the number of operand mode digits in a Code.
const CODE_ARGS = 3

// Valid returns true if the op is a known operation.
func (op CodeOp) Valid() bool {
	return op.Width() != 0
}

// Width returns the number of memory cells occupied by the instruction,
// including the Code itself. Unknown ops have a width of zero.
func (op CodeOp) Width() (width int64) {
	switch op {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		width = 4
	case OP_JT, OP_JF:
		width = 3
	case OP_IN, OP_OUT, OP_ARB:
		width = 2
	case OP_HALT:
		width = 1
	}

	return
}

// Valid returns true if the mode is a known addressing mode.
func (mode CodeMode) Valid() bool {
	return mode >= MODE_POSITION && mode <= MODE_RELATIVE
}

// Writable returns true if the mode can address a write target.
func (mode CodeMode) Writable() bool {
	return mode == MODE_POSITION || mode == MODE_RELATIVE
}

// Code is a single instruction word.
type Code int64

// MakeCode creates an instruction word from an op and its operand modes.
// Missing modes are MODE_POSITION.
func MakeCode(op CodeOp, modes ...CodeMode) Code {
	word := int64(op)
	scale := int64(100)
	for _, mode := range modes {
		word += int64(mode) * scale
		scale *= 10
	}
	return Code(word)
}

// Op returns the undecoded operation of the word.
func (code Code) Op() CodeOp {
	return CodeOp(int64(code) % 100)
}

// Mode returns the undecoded mode of operand 'arg', counting from zero.
func (code Code) Mode(arg int) CodeMode {
	word := int64(code) / 100
	for range arg {
		word /= 10
	}
	return CodeMode(word % 10)
}

// Decode validates and returns the operation and all operand modes.
func (code Code) Decode() (op CodeOp, modes [CODE_ARGS]CodeMode, err error) {
	op = code.Op()
	if !op.Valid() {
		err = errors.Join(ErrDecode, ErrOpcodeInvalid)
		return
	}

	for n := range modes {
		modes[n] = code.Mode(n)
		if !modes[n].Valid() {
			err = errors.Join(ErrDecode, ErrModeInvalid)
			return
		}
	}

	return
}

// String returns the mnemonic representation of this instruction.
func (code Code) String() (out string) {
	op, modes, err := code.Decode()
	if err != nil {
		return fmt.Sprintf("?%d", int64(code))
	}

	out = op.String()
	for _, mode := range modes[:op.Width()-1] {
		out += "." + mode.String()
	}

	return
}
