package cpu

import (
	"fmt"
	"iter"
)

// Op is an instruction opcode. The value of each defined opcode is its
// 4-bit encoding in the high nibble of an instruction word.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_ADD_A  = Op(0b0000) // add.a
	OP_MOV_AB = Op(0b0001) // mov.ab
	OP_IN_A   = Op(0b0010) // in.a
	OP_MOV_A  = Op(0b0011) // mov.a
	OP_MOV_BA = Op(0b0100) // mov.ba
	OP_ADD_B  = Op(0b0101) // add.b
	OP_IN_B   = Op(0b0110) // in.b
	OP_MOV_B  = Op(0b0111) // mov.b
	OP_OUT_B  = Op(0b1001) // out.b
	OP_OUT_IM = Op(0b1011) // out.im
	OP_JNC    = Op(0b1110) // jnc
	OP_JMP    = Op(0b1111) // jmp

	OP_UNDEFINED = Op(16) // undefined
)

// opTable maps the opcode field of an instruction word to its Op.
// Patterns 1000, 1010, 1100 and 1101 are unassigned.
var opTable = [NIBBLE_SIZE]Op{
	0b0000: OP_ADD_A,
	0b0001: OP_MOV_AB,
	0b0010: OP_IN_A,
	0b0011: OP_MOV_A,
	0b0100: OP_MOV_BA,
	0b0101: OP_ADD_B,
	0b0110: OP_IN_B,
	0b0111: OP_MOV_B,
	0b1000: OP_UNDEFINED,
	0b1001: OP_OUT_B,
	0b1010: OP_UNDEFINED,
	0b1011: OP_OUT_IM,
	0b1100: OP_UNDEFINED,
	0b1101: OP_UNDEFINED,
	0b1110: OP_JNC,
	0b1111: OP_JMP,
}

// Ops returns an iterator over all of the defined opcodes.
func Ops() iter.Seq[Op] {
	return func(yield func(Op) bool) {
		for _, op := range opTable {
			if op == OP_UNDEFINED {
				continue
			}
			if !yield(op) {
				return
			}
		}
	}
}

// Defined returns true if op is one of the twelve assigned opcodes.
func (op Op) Defined() bool {
	return op >= 0 && op < NIBBLE_SIZE && opTable[op] == op
}

// HasOperand returns false for opcodes that ignore the immediate nibble.
func (op Op) HasOperand() bool {
	switch op {
	case OP_IN_A, OP_IN_B, OP_OUT_B, OP_MOV_AB, OP_MOV_BA:
		return false
	}
	return true
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Word    uint8  // Word as fetched from ROM.
	Op      Op     // Decoded opcode.
	Operand Nibble // Immediate or jump target.
}

// Encode packs an opcode and operand into an instruction word.
func Encode(op Op, operand Nibble) uint8 {
	return (uint8(op&NIBBLE_MASK) << 4) | uint8(MakeNibble(operand))
}

// Decode splits an instruction word into opcode and operand.
// Unassigned opcode patterns decode to OP_UNDEFINED.
// IN.A, IN.B and OUT.B always report a zero operand.
func Decode(word uint8) (inst Instruction) {
	inst = Instruction{
		Word:    word,
		Op:      opTable[word>>4],
		Operand: MakeNibble(word),
	}

	switch inst.Op {
	case OP_IN_A, OP_IN_B, OP_OUT_B:
		inst.Operand = 0
	}

	return
}

// String returns the assembly language representation of the instruction.
func (inst Instruction) String() (out string) {
	switch inst.Op {
	case OP_ADD_A:
		out = fmt.Sprintf("add a, %d", inst.Operand)
	case OP_ADD_B:
		out = fmt.Sprintf("add b, %d", inst.Operand)
	case OP_MOV_A:
		out = fmt.Sprintf("mov a, %d", inst.Operand)
	case OP_MOV_B:
		out = fmt.Sprintf("mov b, %d", inst.Operand)
	case OP_MOV_AB:
		out = "mov b, a"
	case OP_MOV_BA:
		out = "mov a, b"
	case OP_IN_A:
		out = "in a"
	case OP_IN_B:
		out = "in b"
	case OP_OUT_B:
		out = "out b"
	case OP_OUT_IM:
		out = fmt.Sprintf("out %d", inst.Operand)
	case OP_JMP:
		out = fmt.Sprintf("jmp %d", inst.Operand)
	case OP_JNC:
		out = fmt.Sprintf("jnc %d", inst.Operand)
	default:
		out = fmt.Sprintf(".byte 0x%02x", inst.Word)
		return
	}

	// Keep the ignored low nibble, so the word can be reassembled exactly.
	if !inst.Op.HasOperand() && inst.Word&NIBBLE_MASK != 0 {
		out = fmt.Sprintf(".byte 0x%02x ; %v", inst.Word, out)
	}

	return
}

// Disassemble returns an iterator of address and assembly text for each word.
func Disassemble(words []uint8) iter.Seq2[Nibble, string] {
	return func(yield func(Nibble, string) bool) {
		for n, word := range words {
			if n >= ROM_SIZE {
				return
			}
			if !yield(Nibble(n), Decode(word).String()) {
				return
			}
		}
	}
}
