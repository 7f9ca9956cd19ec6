package cpu

// Port is the single input/output port of the CPU.
// The input latch is written by the driver between cycles, the output
// latch by OUT.B and OUT.IM.
type Port struct {
	input  Nibble
	output Nibble
}

// Reset zeros both latches.
func (p *Port) Reset() {
	*p = Port{}
}

func (p *Port) Input() Nibble {
	return MakeNibble(p.input)
}

func (p *Port) SetInput(value Nibble) {
	p.input = MakeNibble(value)
}

func (p *Port) Output() Nibble {
	return MakeNibble(p.output)
}

func (p *Port) SetOutput(value Nibble) {
	p.output = MakeNibble(value)
}
