package io

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull     = errors.New(f("channel full"))
	ErrChannelReadOnly = errors.New(f("channel read only"))
)

// ErrTapeNumber is a tape input token that is not a decimal integer.
type ErrTapeNumber string

func (err ErrTapeNumber) Error() string {
	return f("tape '%v' is not a number", string(err))
}
