package io

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRom_ReadFrom(t *testing.T) {
	assert := assert.New(t)

	image := strings.Join([]string{
		"; counter",
		"",
		"S 0 0x70 0x51, 0x90",
		"s 0x03 0b11110001   ; jmp 1",
	}, "\n")

	rom := &Rom{}
	_, err := rom.ReadFrom(strings.NewReader(image))
	assert.NoError(err)
	assert.Equal([]uint8{0x70, 0x51, 0x90, 0xf1}, rom.Data)
}

func TestRom_ReadFrom_Gap(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []uint8{0xff}}
	_, err := rom.ReadFrom(strings.NewReader("S 2 0xb3\nS 0 0x30\n"))
	assert.NoError(err)
	assert.Equal([]uint8{0x30, 0x00, 0xb3}, rom.Data)
}

func TestRom_ReadFrom_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		image string
		line  int
		err   error
	}){
		{"X 0 0x10", 1, ErrImageSyntax},
		{"S 0", 1, ErrImageSyntax},
		{"S 16 0x10", 1, ErrImageAddress},
		{"S zz 0x10", 1, ErrImageAddress},
		{"S 0 0x100", 1, ErrImageValue},
		{"S 0 0x10\nS 15 0x10 0x20", 2, ErrImageAddress},
		{"\n\nS 0 nope", 3, ErrImageValue},
	}

	for _, entry := range table {
		rom := &Rom{}
		_, err := rom.ReadFrom(strings.NewReader(entry.image))
		assert.ErrorIs(err, entry.err, entry.image)

		var ie *ErrImage
		if assert.True(errors.As(err, &ie), entry.image) {
			assert.Equal(entry.line, ie.LineNo, entry.image)
		}
	}
}

func TestRom_WriteTo(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{}
	for n := range 10 {
		rom.Data = append(rom.Data, uint8(0xb0+n))
	}

	buff := &bytes.Buffer{}
	n, err := rom.WriteTo(buff)
	assert.NoError(err)
	assert.Equal(int64(buff.Len()), n)

	expected := "S 0x00 0xB0 0xB1 0xB2 0xB3 0xB4 0xB5 0xB6 0xB7\n" +
		"S 0x08 0xB8 0xB9\n"
	assert.Equal(expected, buff.String())

	// Round trip
	other := &Rom{}
	_, err = other.ReadFrom(buff)
	assert.NoError(err)
	assert.Equal(rom.Data, other.Data)
}

func TestRom_WriteTo_Empty(t *testing.T) {
	assert := assert.New(t)

	buff := &bytes.Buffer{}
	n, err := (&Rom{}).WriteTo(buff)
	assert.NoError(err)
	assert.Equal(int64(0), n)
	assert.Equal("", buff.String())
}
