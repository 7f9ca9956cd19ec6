package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Words: []string{"mov", "a", "1"}, Codes: []uint8{Encode(OP_MOV_A, 1)}},
			{LineNo: 2, Ip: 1, Words: []string{"mov", "b", "2"}, Codes: []uint8{Encode(OP_MOV_B, 2)}},
			{LineNo: 3, Ip: 2, Words: []string{"out", "b"}, Codes: []uint8{Encode(OP_OUT_B, 0)}},
		},
	}

	for n := range 3 {
		dbg := prog.Debug(Nibble(n))
		assert.NotNil(dbg.Opcode)
		assert.Equal(n+1, dbg.Opcode.LineNo)
		assert.Equal(0, dbg.Index)
	}
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Words: []string{"mov", "a", "1"}, Codes: []uint8{Encode(OP_MOV_A, 1)}},
		},
	}

	dbg := prog.Debug(10)
	assert.Nil(dbg.Opcode)
	assert.Equal(0, dbg.Index)
}

func TestProgram_Debug_MultipleCodesPerOpcode(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Words: []string{".byte", "1", "2", "3"}, Codes: []uint8{1, 2, 3}},
		},
	}

	for n := range 3 {
		dbg := prog.Debug(Nibble(n))
		assert.Equal(n, dbg.Index)
	}

	dbg := prog.Debug(3)
	assert.Nil(dbg.Opcode)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Codes: []uint8{0xb3}},
			{LineNo: 2, Ip: 1, Codes: []uint8{0x8c, 0x10}},
		},
	}

	assert.Equal([]uint8{0xb3, 0x8c, 0x10}, prog.Binary())
	assert.Nil((&Program{}).Binary())
}

func TestProgram_Codes_EarlyReturn(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Codes: []uint8{0xb3}},
			{LineNo: 2, Ip: 1, Codes: []uint8{0xb4}},
		},
	}

	count := 0
	for range prog.Codes() {
		count++
		if count == 1 {
			break
		}
	}

	assert.Equal(1, count)
}

func TestProgram_Integration_ParseAndRun(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := strings.Join([]string{
		"mov b, 0     ; counter",
		"LOOP:",
		"add b, 1",
		"out b",
		"jmp LOOP",
	}, "\n")

	prog, err := asm.Parse(strings.NewReader(program))
	assert.NoError(err)

	dbg := prog.Debug(1)
	assert.NotNil(dbg.Opcode)
	assert.Equal(3, dbg.Opcode.LineNo)

	cpu := NewCpu()
	cpu.Load(prog.Binary())

	assert.NoError(cpu.Tick())
	for n := range 5 {
		for range 3 {
			assert.NoError(cpu.Tick())
		}
		assert.Equal(Nibble(n+1), cpu.Output())
	}
}
