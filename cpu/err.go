package cpu

import (
	"errors"

	"github.com/ezrec/td4/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrRomEmpty = errors.New(f("rom empty"))

	// Instruction decode errors
	ErrOpcodeDecode = errors.New(f("decode"))
	ErrOpcodeOp     = errors.New(f("op"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeMissing      = errors.New(f("opcode missing"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrProgramTooLong     = errors.New(f("program exceeds rom"))
)

// ErrAddressOutOfRange is returned when the program counter addresses a
// word beyond the loaded program.
type ErrAddressOutOfRange struct {
	Address Nibble
	Length  int
}

func (err *ErrAddressOutOfRange) Error() string {
	return f("address %d out of range (rom length %d)", int(err.Address), err.Length)
}

func (err *ErrAddressOutOfRange) Is(target error) (ok bool) {
	_, ok = target.(*ErrAddressOutOfRange)
	return
}

// ErrUndefinedOpcode is returned when an instruction word carries an
// unassigned opcode pattern.
type ErrUndefinedOpcode uint8

func (eu ErrUndefinedOpcode) Error() string {
	return f("undefined opcode 0b%04b in word 0x%02x", uint8(eu)>>4, uint8(eu))
}

func (eu ErrUndefinedOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrUndefinedOpcode)
	return
}

// ErrOpcode annotates an error with the instruction that raised it.
type ErrOpcode Instruction

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x %v", eo.Word, Instruction(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrImmediateRange is returned when an immediate does not fit in 4 bits.
type ErrImmediateRange string

func (err ErrImmediateRange) Error() string {
	return f("'%v' does not fit in 4 bits", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
