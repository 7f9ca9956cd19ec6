package cpu

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genNibble() gopter.Gen {
	return gen.UInt8Range(0, NIBBLE_MASK).Map(func(v uint8) Nibble {
		return Nibble(v)
	})
}

// execute runs a single instruction against a CPU in the given state.
func execute(s state, op Op, operand Nibble) (cpu *Cpu, err error) {
	cpu = NewCpu()
	s.apply(cpu)
	err = cpu.Execute(Decode(Encode(op, operand)))
	return
}

func TestCpu_AddProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("add.a is a 4-bit sum with carry", prop.ForAll(
		func(v, o Nibble, carry bool) bool {
			cpu, err := execute(state{a: v, carry: carry}, OP_ADD_A, o)
			return err == nil &&
				cpu.Registers.A() == MakeNibble(int(v)+int(o)) &&
				cpu.Registers.Carry() == (int(v)+int(o) > 15)
		},
		genNibble(), genNibble(), gen.Bool(),
	))

	properties.Property("add.b is a 4-bit sum with carry", prop.ForAll(
		func(v, o Nibble, carry bool) bool {
			cpu, err := execute(state{b: v, carry: carry}, OP_ADD_B, o)
			return err == nil &&
				cpu.Registers.B() == MakeNibble(int(v)+int(o)) &&
				cpu.Registers.Carry() == (int(v)+int(o) > 15)
		},
		genNibble(), genNibble(), gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestCpu_MoveProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("mov.a loads the operand and clears carry", prop.ForAll(
		func(a, o Nibble) bool {
			cpu, err := execute(state{a: a, carry: true}, OP_MOV_A, o)
			return err == nil && cpu.Registers.A() == o && !cpu.Registers.Carry()
		},
		genNibble(), genNibble(),
	))

	properties.Property("mov.b loads the operand and clears carry", prop.ForAll(
		func(b, o Nibble) bool {
			cpu, err := execute(state{b: b, carry: true}, OP_MOV_B, o)
			return err == nil && cpu.Registers.B() == o && !cpu.Registers.Carry()
		},
		genNibble(), genNibble(),
	))

	properties.Property("mov.ab copies a into b and clears carry", prop.ForAll(
		func(a, b Nibble) bool {
			cpu, err := execute(state{a: a, b: b, carry: true}, OP_MOV_AB, 0)
			return err == nil && cpu.Registers.B() == a && cpu.Registers.A() == a && !cpu.Registers.Carry()
		},
		genNibble(), genNibble(),
	))

	properties.Property("mov.ba copies b into a and clears carry", prop.ForAll(
		func(a, b Nibble) bool {
			cpu, err := execute(state{a: a, b: b, carry: true}, OP_MOV_BA, 0)
			return err == nil && cpu.Registers.A() == b && cpu.Registers.B() == b && !cpu.Registers.Carry()
		},
		genNibble(), genNibble(),
	))

	properties.TestingRun(t)
}

func TestCpu_JumpProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("jmp sets pc exactly and clears carry", prop.ForAll(
		func(pc, addr Nibble, carry bool) bool {
			cpu, err := execute(state{pc: pc, carry: carry}, OP_JMP, addr)
			return err == nil && cpu.Registers.Pc() == addr && !cpu.Registers.Carry()
		},
		genNibble(), genNibble(), gen.Bool(),
	))

	properties.Property("jnc branches only on clear carry", prop.ForAll(
		func(pc, addr Nibble, carry bool) bool {
			cpu, err := execute(state{pc: pc, carry: carry}, OP_JNC, addr)
			expected := addr
			if carry {
				expected = pc
			}
			return err == nil && cpu.Registers.Pc() == expected && !cpu.Registers.Carry()
		},
		genNibble(), genNibble(), gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestCpu_PcProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	ops := []Op{
		OP_ADD_A, OP_ADD_B, OP_MOV_A, OP_MOV_B, OP_MOV_AB, OP_MOV_BA,
		OP_IN_A, OP_IN_B, OP_OUT_B, OP_OUT_IM,
	}

	properties.Property("non-jump opcodes advance pc by one", prop.ForAll(
		func(op Op, pc, operand Nibble, carry bool) bool {
			cpu, err := execute(state{pc: pc, carry: carry}, op, operand)
			return err == nil && cpu.Registers.Pc() == MakeNibble(pc+1)
		},
		gen.OneConstOf(ops[0], ops[1], ops[2], ops[3], ops[4], ops[5], ops[6], ops[7], ops[8], ops[9]),
		genNibble(), genNibble(), gen.Bool(),
	))

	properties.Property("io opcodes ignore the operand", prop.ForAll(
		func(op Op, operand Nibble) bool {
			return Decode(Encode(op, operand)).Operand == 0
		},
		gen.OneConstOf(OP_IN_A, OP_IN_B, OP_OUT_B),
		genNibble(),
	))

	properties.Property("registers stay within 4 bits", prop.ForAll(
		func(word uint8, a, b, pc, in Nibble, carry bool) bool {
			cpu := NewCpu()
			state{a: a, b: b, pc: pc, in: in, carry: carry}.apply(cpu)
			_ = cpu.Execute(Decode(word))
			s := snapshot(cpu)
			return s.a <= NIBBLE_MASK && s.b <= NIBBLE_MASK && s.pc <= NIBBLE_MASK && s.out <= NIBBLE_MASK
		},
		gen.UInt8(), genNibble(), genNibble(), genNibble(), genNibble(), gen.Bool(),
	))

	properties.TestingRun(t)
}
