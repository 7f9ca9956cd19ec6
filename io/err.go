package io

import (
	"errors"

	"github.com/ezrec/td4/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelInvalid = errors.New(f("channel invalid"))
	ErrInputInvalid   = errors.New(f("input is not a hex digit"))

	// Image errors
	ErrImageSyntax  = errors.New(f("image record syntax"))
	ErrImageAddress = errors.New(f("image address out of range"))
	ErrImageValue   = errors.New(f("image value out of range"))
)

// ErrImage indicates the location of a ROM image error.
type ErrImage struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrImage) Error() string {
	return f("image line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrImage) Unwrap() error {
	return err.Err
}
