// Package cpu implements the intcode processor.
//
// A program is a flat sequence of signed integers that is also the initial
// memory image. Each instruction word encodes an operation in its two low
// decimal digits, and one addressing mode per operand in the digits above
// (position, immediate, or relative to a movable base). Memory grows on
// write, and reads past its end return zero.
//
// The processor never blocks on I/O. Run returns to the caller on every
// output, and suspends at an input instruction until a value is supplied
// on a later call.
package cpu
