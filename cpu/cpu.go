// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
)

var _cpu_defines = map[string]string{
	"ROM_SIZE":    fmt.Sprintf("%v", ROM_SIZE),
	"NIBBLE_MASK": fmt.Sprintf("0x%x", NIBBLE_MASK),
}

// Cpu is the simulation context for the TD4 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.
	Compat  bool // Decode unassigned opcodes as ADD.A instead of failing.

	Registers Registers // Register file.
	Rom       Rom       // Instruction store.
	Port      Port      // Input/output port.

	Ticks int // CPU ticks counter.
}

// NewCpu creates a new CPU with an empty ROM.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"pc", "a", "b", "carry", "in", "out"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%X", uint8(cpu.Registers.Pc()))
		case "a":
			strval = fmt.Sprintf("%04b", uint8(cpu.Registers.A()))
		case "b":
			strval = fmt.Sprintf("%04b", uint8(cpu.Registers.B()))
		case "carry":
			strval = "false"
			if cpu.Registers.Carry() {
				strval = "true"
			}
		case "in":
			strval = fmt.Sprintf("%04b", uint8(cpu.Port.Input()))
		case "out":
			strval = fmt.Sprintf("%04b", uint8(cpu.Port.Output()))
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Load replaces the program in ROM.
func (cpu *Cpu) Load(program []uint8) {
	cpu.Rom.Load(program)
}

// Reset the CPU state.
// - Clears the registers and port latches.
// - Zeros the tick counter.
// - Leaves the ROM untouched.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Registers.Reset()
	cpu.Port.Reset()
	cpu.Ticks = 0
}

// SetInput sets the input port latch.
func (cpu *Cpu) SetInput(value Nibble) {
	cpu.Port.SetInput(value)
}

// Output returns the output port latch.
func (cpu *Cpu) Output() Nibble {
	return cpu.Port.Output()
}

// Fetch reads the instruction word addressed by the program counter.
func (cpu *Cpu) Fetch() (word uint8, err error) {
	return cpu.Rom.Read(cpu.Registers.Pc())
}

// Decode decodes an instruction word.
// Unassigned opcode patterns fail with ErrUndefinedOpcode, unless Compat
// is set, in which case they are treated as ADD.A.
func (cpu *Cpu) Decode(word uint8) (inst Instruction, err error) {
	inst = Decode(word)
	if inst.Op != OP_UNDEFINED {
		return
	}

	if cpu.Compat {
		inst.Op = OP_ADD_A
		return
	}

	err = ErrUndefinedOpcode(word)
	return
}

// Tick executes a single fetch, decode, execute cycle.
func (cpu *Cpu) Tick() (err error) {
	word, err := cpu.Fetch()
	if err != nil {
		return
	}

	inst, err := cpu.Decode(word)
	if err != nil {
		err = errors.Join(ErrOpcodeDecode, err)
		return
	}

	err = cpu.Execute(inst)
	if err != nil {
		return
	}

	cpu.Ticks += 1

	return
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(inst), err)
		}
	}()

	if cpu.Verbose {
		log.Printf("%X: %v", uint8(cpu.Registers.Pc()), inst)
	}

	reg := &cpu.Registers
	port := &cpu.Port
	imm := inst.Operand

	switch inst.Op {
	case OP_ADD_A:
		reg.SetCarry(cpu.add(reg.A(), imm, reg.SetA))
	case OP_ADD_B:
		reg.SetCarry(cpu.add(reg.B(), imm, reg.SetB))
	case OP_MOV_A:
		reg.SetA(imm)
		reg.SetCarry(false)
	case OP_MOV_B:
		reg.SetB(imm)
		reg.SetCarry(false)
	case OP_MOV_AB:
		reg.SetB(reg.A())
		reg.SetCarry(false)
	case OP_MOV_BA:
		reg.SetA(reg.B())
		reg.SetCarry(false)
	case OP_IN_A:
		reg.SetA(port.Input())
		reg.SetCarry(false)
	case OP_IN_B:
		reg.SetB(port.Input())
		reg.SetCarry(false)
	case OP_OUT_B:
		port.SetOutput(reg.B())
		reg.SetCarry(false)
	case OP_OUT_IM:
		port.SetOutput(imm)
		reg.SetCarry(false)
	case OP_JMP:
		reg.SetPc(imm)
		reg.SetCarry(false)
		return
	case OP_JNC:
		if !reg.Carry() {
			reg.SetPc(imm)
		}
		reg.SetCarry(false)
		return
	case OP_UNDEFINED:
		err = ErrUndefinedOpcode(inst.Word)
		return
	default:
		err = ErrOpcodeOp
		return
	}

	reg.IncrementPc()

	return
}

// add performs a 4-bit addition, stores the masked sum, and returns the carry.
func (cpu *Cpu) add(input Nibble, value Nibble, set_target func(value Nibble)) (carry bool) {
	sum := uint16(input) + uint16(value)
	set_target(MakeNibble(sum))
	carry = sum > NIBBLE_MASK

	return
}
