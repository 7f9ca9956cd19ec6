// Package cpu implements the processor and assembler for the TD4 system.
//
// The CPU consists of a 4-bit program counter (PC), two 4-bit registers
// (A and B), a carry flag, a single 4-bit input/output port, and a ROM of
// up to sixteen 8-bit instruction words. Each instruction carries a 4-bit
// opcode in the high nibble and a 4-bit immediate in the low nibble.
//
// The assembler provides a small assembly language for the TD4 instruction
// set, supporting macros, labels, equates, and compile-time expression
// evaluation.
package cpu
