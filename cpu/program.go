package cpu

import (
	"iter"
)

// Opcode represents a line of assembled code with its source location and generated words.
type Opcode struct {
	LineNo    int
	Ip        int
	Words     []string
	Codes     []uint8
	LinkLabel string
}

// Program is an assembled program listing.
type Program struct {
	Opcodes []Opcode
}

// Debug locates the opcode that generated the word at an address.
type Debug struct {
	*Opcode
	Index int
}

// Debug returns the source opcode for an address, or a zero Debug if the
// address was not generated by the program.
func (prog *Program) Debug(address Nibble) (dbg Debug) {
	ip := int(address)
	for n, op := range prog.Opcodes {
		if ip >= op.Ip && ip < op.Ip+len(op.Codes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  ip - op.Ip,
			}
			break
		}
	}

	return
}

// Binary returns the ROM image of the program.
func (prog *Program) Binary() (bins []uint8) {
	for _, word := range prog.Codes() {
		bins = append(bins, word)
	}

	return
}

// Codes returns an iterator over the address and word of every generated word.
func (prog *Program) Codes() iter.Seq2[Nibble, uint8] {
	return func(yield func(address Nibble, word uint8) bool) {
		for _, op := range prog.Opcodes {
			for n, word := range op.Codes {
				if !yield(MakeNibble(op.Ip+n), word) {
					return
				}
			}
		}
	}
}
