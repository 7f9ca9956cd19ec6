package cpu

const (
	NIBBLE_MASK = 0b1111 // Mask of a 4-bit value.
	NIBBLE_SIZE = 16     // Number of distinct 4-bit values.
)

// Nibble is a 4-bit value. All register, latch and operand state is
// stored as a Nibble, set through MakeNibble.
type Nibble uint8

// MakeNibble masks a value to its low 4 bits.
func MakeNibble[T ~uint8 | ~uint16 | ~uint32 | ~uint | ~int](value T) Nibble {
	return Nibble(uint8(value) & NIBBLE_MASK)
}

// Registers is the register file of the CPU.
type Registers struct {
	a     Nibble
	b     Nibble
	pc    Nibble
	carry bool
}

// Reset zeros all registers and clears carry.
func (r *Registers) Reset() {
	*r = Registers{}
}

func (r *Registers) A() Nibble { return r.a }

func (r *Registers) SetA(value Nibble) { r.a = MakeNibble(value) }

func (r *Registers) B() Nibble { return r.b }

func (r *Registers) SetB(value Nibble) { r.b = MakeNibble(value) }

func (r *Registers) Pc() Nibble { return r.pc }

func (r *Registers) SetPc(value Nibble) { r.pc = MakeNibble(value) }

// IncrementPc advances the program counter, wrapping at 16.
func (r *Registers) IncrementPc() {
	r.pc = MakeNibble(r.pc + 1)
}

func (r *Registers) Carry() bool { return r.carry }

func (r *Registers) SetCarry(value bool) { r.carry = value }
