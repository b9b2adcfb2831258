package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
)

// Tape provides sequential I/O over byte streams. Input is read through
// a buffer, so it must not be replaced once reading has started.
//
// In decimal mode, input is a stream of integers separated by commas or
// whitespace, and each output value is written on its own line.
// In Ascii mode, each input byte is one value, and output values in the
// range 0..255 are written as raw bytes.
type Tape struct {
	Input  io.Reader
	Output io.Writer
	Ascii  bool

	reader *bufio.Reader
	err    error
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Err returns the first malformed input, if any.
func (tc *Tape) Err() error {
	return tc.err
}

// input returns the buffered reader over Input, created on first use.
func (tc *Tape) input() *bufio.Reader {
	if tc.reader == nil {
		tc.reader = bufio.NewReader(tc.Input)
	}

	return tc.reader
}

// isSeparator reports whether 'char' separates decimal tokens.
func isSeparator(char byte) bool {
	switch char {
	case ',', ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}

	return false
}

// next reads the next value from the input stream.
func (tc *Tape) next() (value int64, ok bool) {
	if tc.Input == nil || tc.err != nil {
		return
	}

	in := tc.input()

	if tc.Ascii {
		char, err := in.ReadByte()
		if err != nil {
			return
		}
		return int64(char), true
	}

	var token []byte
	for {
		char, err := in.ReadByte()
		if err != nil {
			break
		}
		if isSeparator(char) {
			if len(token) == 0 {
				continue
			}
			break
		}
		token = append(token, char)
	}

	if len(token) == 0 {
		return
	}

	value, err := strconv.ParseInt(string(token), 10, 64)
	if err != nil {
		tc.err = ErrTapeNumber(token)
		return
	}

	ok = true
	return
}

// Receive returns an iterator that yields values from the input stream.
func (tc *Tape) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		for {
			value, ok := tc.next()
			if !ok {
				return
			}
			if !yield(value) {
				return
			}
		}
	}
}

// Send writes a value to the output stream.
func (tc *Tape) Send(value int64) (err error) {
	if tc.Ascii && value >= 0 && value <= 0xff {
		_, err = tc.Output.Write([]byte{byte(value)})
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	return
}
