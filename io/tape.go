package io

import (
	"fmt"
	"io"
	"strconv"
	"unicode"
)

// Tape drives the port from byte streams.
// Input is a stream of hexadecimal digits, one per input value, with
// whitespace ignored. Output is written as one '%04b' line per value.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	last uint8
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Receive reads the next hex digit from the input stream.
// At the end of input, the last value received is returned with io.EOF.
func (tc *Tape) Receive() (value uint8, err error) {
	if tc.Input == nil {
		value = tc.last
		err = io.EOF
		return
	}

	var one [1]byte
	for {
		var count int
		count, err = tc.Input.Read(one[:])
		if count == 0 && err != nil {
			value = tc.last
			return
		}
		err = nil
		if count == 0 || unicode.IsSpace(rune(one[0])) {
			continue
		}
		break
	}

	digit, perr := strconv.ParseUint(string(one[:]), 16, 8)
	if perr != nil {
		value = tc.last
		err = ErrInputInvalid
		return
	}

	tc.last = uint8(digit)
	value = tc.last
	return
}

// Send writes an output value as a line of four binary digits.
func (tc *Tape) Send(value uint8) (err error) {
	if tc.Output == nil {
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%04b\n", value&0xf)
	return
}
