package emulator

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrInputEmpty = errors.New(f("input empty"))
)

// ErrRuntime indicates the instruction pointer of a runtime error.
type ErrRuntime struct {
	Ip  int64
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("ip %d %v", err.Ip, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrPatchSyntax is a patch that is not of the form 'addr=value'.
type ErrPatchSyntax string

func (err ErrPatchSyntax) Error() string {
	return f("patch '%v' is not addr=value", string(err))
}

// ErrParseExpression is a patch expression that is not an integer.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("'%v' is not a valid expression", string(err))
}
