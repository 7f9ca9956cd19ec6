package emulator

import (
	"github.com/ezrec/td4/cpu"
	"github.com/ezrec/td4/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Address cpu.Nibble
	LineNo  int
	Err     error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("address %X %v", uint8(err.Address), err.Err)
	}
	return f("address %X line %d %v", uint8(err.Address), err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
